package helper_test

import (
	"testing"

	"github.com/mittwald/lcms-probe/internal/helper"
	"github.com/stretchr/testify/assert"
)

func TestResolveEnvReadsPrefixedValues(t *testing.T) {
	t.Setenv("LCMS_TEST_HOST", "db.internal")

	assert.Equal(t, "db.internal", helper.ResolveEnv("ENV:LCMS_TEST_HOST"))
	assert.Equal(t, "", helper.ResolveEnv("ENV:LCMS_TEST_UNSET"))
	assert.Equal(t, "literal", helper.ResolveEnv("literal"))
}

func TestSetDefaultStringIfEmpty(t *testing.T) {
	assert.Equal(t, "3306", helper.SetDefaultStringIfEmpty("", "3306", "port", "mysql"))
	assert.Equal(t, "3307", helper.SetDefaultStringIfEmpty("3307", "3306", "port", "mysql"))
}
