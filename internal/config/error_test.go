package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Empty(t *testing.T) {
	err := &Error{}
	assert.False(t, err.HasErrors())
	assert.Empty(t, err.Error())
}

func TestError_MissingVars(t *testing.T) {
	err := &Error{Missing: []string{"API_KEY", "DB_PATH"}}
	assert.True(t, err.HasErrors())
	assert.Equal(t, "missing environment variables: API_KEY, DB_PATH", err.Error())
}

func TestError_ValidationErrors(t *testing.T) {
	err := &Error{Errors: []string{"log.level must be one of trace", "database.path is required"}}
	assert.Equal(t, "validation failed:\n  - log.level must be one of trace\n  - database.path is required", err.Error())
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("ARRGATE_TEST_SET", "value")
	t.Setenv("ARRGATE_TEST_EMPTY", "")
	_ = os.Unsetenv("ARRGATE_TEST_UNSET")

	tests := []struct {
		name        string
		in          string
		want        string
		wantMissing []string
	}{
		{"plain", `path = "${ARRGATE_TEST_SET}"`, `path = "value"`, nil},
		{"default unused", `path = "${ARRGATE_TEST_SET:-other}"`, `path = "value"`, nil},
		{"default when unset", `path = "${ARRGATE_TEST_UNSET:-other}"`, `path = "other"`, nil},
		{"default when empty", `path = "${ARRGATE_TEST_EMPTY:-other}"`, `path = "other"`, nil},
		{"empty default", `path = "${ARRGATE_TEST_UNSET:-}"`, `path = ""`, nil},
		{"set but empty", `path = "${ARRGATE_TEST_EMPTY}"`, `path = ""`, nil},
		{"missing left as is", `a = "${ARRGATE_TEST_UNSET}"`, `a = "${ARRGATE_TEST_UNSET}"`, []string{"ARRGATE_TEST_UNSET"}},
		{"missing reported once", `a = "${ARRGATE_TEST_UNSET}${ARRGATE_TEST_UNSET}"`, `a = "${ARRGATE_TEST_UNSET}${ARRGATE_TEST_UNSET}"`, []string{"ARRGATE_TEST_UNSET"}},
		{"no references", `level = "info"`, `level = "info"`, nil},
		{"comment line ignored", "# use ${ARRGATE_TEST_UNSET}\nlevel = \"info\"", "# use ${ARRGATE_TEST_UNSET}\nlevel = \"info\"", nil},
		{"indented comment ignored", "  # ${ARRGATE_TEST_UNSET}\n", "  # ${ARRGATE_TEST_UNSET}\n", nil},
		{"multi line", "a = \"${ARRGATE_TEST_SET}\"\nb = \"${ARRGATE_TEST_UNSET}\"\n", "a = \"value\"\nb = \"${ARRGATE_TEST_UNSET}\"\n", []string{"ARRGATE_TEST_UNSET"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
