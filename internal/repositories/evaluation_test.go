package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grupoandino/supplier-evaluator/internal/models"
)

func TestWithUpdatedAt_DoesNotMutateCaller(t *testing.T) {
	fields := map[string]interface{}{
		"status": models.StatusSubmitted,
	}

	updates := withUpdatedAt(fields)

	require.Contains(t, updates, "updated_at")
	assert.Equal(t, models.StatusSubmitted, updates["status"])

	assert.Len(t, fields, 1)
	assert.NotContains(t, fields, "updated_at")
}
