package schema

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/aretw0/confcheck/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, cfgText, schemaText string) (*config.Config, *Schema) {
	t.Helper()
	cfg, err := config.Parse(cfgText)
	require.NoError(t, err)
	s, err := Parse(schemaText)
	require.NoError(t, err)
	return cfg, s
}

func TestValidate_Success(t *testing.T) {
	cfg, s := mustParse(t,
		"retry = 3\ndebug = false\nendpoint = localhost",
		"retry = integer\ndebug = bool\nendpoint = string")

	assert.NoError(t, Validate(cfg, s))
}

func TestValidate_MatchingConfigAlwaysPasses(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := Parse("retry = integer\ndebug = bool\nendpoint = string")
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		intVal := strconv.FormatInt(rng.Int63()-rng.Int63(), 10)
		boolVal := strconv.FormatBool(rng.Intn(2) == 0)
		strVal := fmt.Sprintf("host%d", rng.Intn(1000))

		cfg, err := config.Parse(fmt.Sprintf("retry = %s\ndebug = %s\nendpoint = %s", intVal, boolVal, strVal))
		require.NoError(t, err)
		require.NoError(t, Validate(cfg, s), "retry=%s debug=%s endpoint=%s", intVal, boolVal, strVal)
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	cfg, s := mustParse(t, "retry = abc", "retry = integer")

	err := Validate(cfg, s)
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, &ValidationError{Kind: KindTypeMismatch, Key: "retry", Expected: "integer", Got: "abc"}, errs[0])
	assert.EqualError(t, err, "'retry': expected integer, got 'abc'")
}

func TestValidate_UnknownKey(t *testing.T) {
	cfg, s := mustParse(t, "retry = 1\nextra = x", "retry = integer")

	errs := ValidationErrors(Validate(cfg, s))
	require.Len(t, errs, 1)
	assert.Equal(t, KindUnknownKey, errs[0].Kind)
	assert.Equal(t, "extra", errs[0].Key)
	assert.Equal(t, "'extra': unknown key (not in schema)", errs[0].Error())
}

func TestValidate_MissingKey(t *testing.T) {
	cfg, s := mustParse(t,
		"endpoint = localhost:3000\ndebug = true\nlog.file = /var/log/console.log",
		"endpoint = string\ndebug = bool\nlog.file = string\nlog.name = string")

	errs := ValidationErrors(Validate(cfg, s))
	require.Len(t, errs, 1)
	assert.Equal(t, KindMissingKey, errs[0].Kind)
	assert.Equal(t, "log.name", errs[0].Key)
	assert.Equal(t, "'log.name': missing (required by schema)", errs[0].Error())
}

func TestValidate_CommentedOutKeyIsMissing(t *testing.T) {
	cfg, s := mustParse(t,
		"endpoint = localhost:3000\n# debug = true\nlog.file = /var/log/console.log\nlog.name = default.log",
		"endpoint = string\ndebug = bool\nlog.file = string\nlog.name = string")

	errs := ValidationErrors(Validate(cfg, s))
	require.Len(t, errs, 1)
	assert.Equal(t, KindMissingKey, errs[0].Kind)
	assert.Equal(t, "debug", errs[0].Key)
}

func TestValidate_AccumulatesAllFindingsSortedByKey(t *testing.T) {
	cfg, s := mustParse(t,
		"zeta = 1\nretry = many\ndebug = yes\nalpha = x",
		"retry = integer\ndebug = bool\nname = string")

	err := Validate(cfg, s)
	errs := ValidationErrors(err)
	require.Len(t, errs, 5)

	got := make([]string, len(errs))
	for i, e := range errs {
		got[i] = string(e.Kind) + ":" + e.Key
	}
	assert.Equal(t, []string{
		"unknown_key:alpha",
		"type_mismatch:debug",
		"missing_key:name",
		"type_mismatch:retry",
		"unknown_key:zeta",
	}, got)

	assert.Contains(t, err.Error(), "5 validation errors:")
	assert.Contains(t, err.Error(), "  1. 'alpha': unknown key (not in schema)")
}

func TestValidate_EmptyInputs(t *testing.T) {
	cfg, s := mustParse(t, "", "")
	assert.NoError(t, Validate(cfg, s))

	cfg, s = mustParse(t, "a = 1", "")
	assert.Len(t, ValidationErrors(Validate(cfg, s)), 1)

	cfg, s = mustParse(t, "", "a = string")
	assert.Len(t, ValidationErrors(Validate(cfg, s)), 1)
}

func TestValidationErrors_NonAggregate(t *testing.T) {
	assert.Nil(t, ValidationErrors(nil))
	assert.Nil(t, ValidationErrors(fmt.Errorf("other")))

	wrapped := fmt.Errorf("check: %w", &AggregateError{Errors: []*ValidationError{{Kind: KindMissingKey, Key: "a"}}})
	assert.Len(t, ValidationErrors(wrapped), 1)
}
