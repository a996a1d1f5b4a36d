package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a deterministic run against a fresh collection.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Seed seeds the random source when Script is empty.
	Seed uint64 `yaml:"seed,omitempty"`

	// Script lists the exact values the random source returns, in order.
	// Running past the end of the script fails the scenario.
	Script []int `yaml:"script,omitempty"`

	// SessionID is used for every playdate. Defaults to
	// "test-session-default".
	SessionID string `yaml:"session_id,omitempty"`

	// Pets seed the collection, in order, one second apart.
	Pets []PetSeed `yaml:"pets"`

	// Flow contains the steps to run.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final collection.
	Assertions []Assertion `yaml:"assertions"`
}

// PetSeed is a pet present before the flow starts. Word seeds a legacy
// record; Words seeds a migrated one.
type PetSeed struct {
	Name     string   `yaml:"name"`
	Word     *string  `yaml:"word,omitempty"`
	Words    []string `yaml:"words,omitempty"`
	Released bool     `yaml:"released,omitempty"`
}

// FlowStep holds exactly one action.
type FlowStep struct {
	Create   *CreateStep   `yaml:"create,omitempty"`
	Visit    *VisitStep    `yaml:"visit,omitempty"`
	Release  *ReleaseStep  `yaml:"release,omitempty"`
	Playdate *PlaydateStep `yaml:"playdate,omitempty"`

	// Expect names the error the step must fail with. Without it the step
	// must succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// CreateStep hatches a new pet.
type CreateStep struct {
	Name string `yaml:"name"`
}

// VisitStep visits a pet, asks it to speak Speak times, lets Seconds pass,
// and ends the visit.
type VisitStep struct {
	Pet     string `yaml:"pet"`
	Seconds int    `yaml:"seconds,omitempty"`
	Speak   int    `yaml:"speak,omitempty"`
}

// ReleaseStep visits a pet and releases it.
type ReleaseStep struct {
	Pet string `yaml:"pet"`
}

// PlaydateStep chooses Pets in order, runs Turns utterances, lets Seconds
// pass, and concludes.
type PlaydateStep struct {
	Pets    []string `yaml:"pets"`
	Turns   int      `yaml:"turns,omitempty"`
	Seconds int      `yaml:"seconds,omitempty"`
}

// ExpectClause specifies the expected failure of a step.
type ExpectClause struct {
	Error string `yaml:"error"`
}

// Assertion validates the final collection.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Pet names the pet under test.
	Pet string `yaml:"pet,omitempty"`

	// Count is used by words_count, history_count, and pet_count.
	Count int `yaml:"count,omitempty"`

	// Released is used by released.
	Released *bool `yaml:"released,omitempty"`

	// Legacy is used by legacy.
	Legacy *bool `yaml:"legacy,omitempty"`

	// From is used by letters_from.
	From []string `yaml:"from,omitempty"`

	// Partners is used by partners.
	Partners []string `yaml:"partners,omitempty"`
}

// Assertion type constants.
const (
	AssertWordsCount   = "words_count"
	AssertHistoryCount = "history_count"
	AssertReleased     = "released"
	AssertLegacy       = "legacy"
	AssertLettersFrom  = "letters_from"
	AssertPartners     = "partners"
	AssertPetCount     = "pet_count"
)

// Error codes a step can expect.
const (
	ErrCodeNotEnoughParticipants = "not_enough_participants"
	ErrCodeNoSourceLetters       = "no_source_letters"
	ErrCodeInvalidChoice         = "invalid_choice"
	ErrCodeReleased              = "released"
	ErrCodeNoSuchPet             = "no_such_pet"
)

var knownErrorCodes = []string{
	ErrCodeNotEnoughParticipants,
	ErrCodeNoSourceLetters,
	ErrCodeInvalidChoice,
	ErrCodeReleased,
	ErrCodeNoSuchPet,
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields (typos) and missing required fields are errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadDir loads every .yaml and .yml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var scenarios []*Scenario
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		s, err := LoadScenario(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", dir)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, v := range s.Script {
		if v < 0 {
			return fmt.Errorf("script[%d]: values must be non-negative", i)
		}
	}

	seen := map[string]bool{}
	for i, p := range s.Pets {
		if p.Name == "" {
			return fmt.Errorf("pets[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("pets[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.Word != nil && p.Words != nil {
			return fmt.Errorf("pets[%d]: word and words are mutually exclusive", i)
		}
		if p.Word == nil && p.Words == nil {
			return fmt.Errorf("pets[%d]: word or words is required", i)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *FlowStep) error {
	actions := 0
	for _, set := range []bool{step.Create != nil, step.Visit != nil, step.Release != nil, step.Playdate != nil} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return fmt.Errorf("flow[%d]: exactly one of create, visit, release, playdate is required", index)
	}

	switch {
	case step.Visit != nil:
		if step.Visit.Pet == "" {
			return fmt.Errorf("flow[%d].visit: pet is required", index)
		}
		if step.Visit.Seconds < 0 || step.Visit.Speak < 0 {
			return fmt.Errorf("flow[%d].visit: seconds and speak must be non-negative", index)
		}
	case step.Release != nil:
		if step.Release.Pet == "" {
			return fmt.Errorf("flow[%d].release: pet is required", index)
		}
	case step.Playdate != nil:
		if step.Playdate.Turns < 0 || step.Playdate.Seconds < 0 {
			return fmt.Errorf("flow[%d].playdate: turns and seconds must be non-negative", index)
		}
	}

	if step.Expect != nil && !slices.Contains(knownErrorCodes, step.Expect.Error) {
		return fmt.Errorf("flow[%d].expect: unknown error %q", index, step.Expect.Error)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Type != AssertPetCount && a.Pet == "" {
		return fmt.Errorf("assertions[%d]: pet is required for %s", index, a.Type)
	}

	switch a.Type {
	case AssertWordsCount, AssertHistoryCount, AssertPetCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertReleased:
		if a.Released == nil {
			return fmt.Errorf("assertions[%d]: released is required for released", index)
		}
	case AssertLegacy:
		if a.Legacy == nil {
			return fmt.Errorf("assertions[%d]: legacy is required for legacy", index)
		}
	case AssertLettersFrom:
		if len(a.From) == 0 {
			return fmt.Errorf("assertions[%d]: from list is required for letters_from", index)
		}
	case AssertPartners:
		if a.Partners == nil {
			return fmt.Errorf("assertions[%d]: partners list is required for partners (use [] for none)", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
