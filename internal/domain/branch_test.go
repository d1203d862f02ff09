package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBranchName_EmptyName(t *testing.T) {
	err := ValidateBranchName("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateBranchName_InvalidPrefix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"starts with dot", ".hidden", "start with '.'"},
		{"starts with slash", "/path", "start with '/'"},
		{"starts with hyphen", "-feature", "start with '-'"},
		{"full reference", "refs/heads/knowledge-abc", "short name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_InvalidSuffix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"ends with .lock", "branch.lock", ".lock"},
		{"ends with dot", "branch.", "end with '.'"},
		{"ends with slash", "branch/", "end with '/'"},
		{"ends with hyphen", "branch-", "end with '-'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_InvalidSequences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"double dot", "feature..branch", "'..'"},
		{"double slash", "feature//branch", "'//'"},
		{"at brace", "branch@{0}", "'@{'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_InvalidCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"space", "feature branch"},
		{"tilde", "feature~1"},
		{"caret", "feature^1"},
		{"colon", "feature:1"},
		{"question mark", "feature?"},
		{"asterisk", "feature*"},
		{"bracket", "feature[0]"},
		{"backslash", "feature\\path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateBranchName(tt.input))
		})
	}
}

func TestValidateBranchName_ValidNames(t *testing.T) {
	for _, name := range []string{"feature", "knowledge-photosynthesis-1718", "skill/a", "release-1.0.0", "user_branch"} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateBranchName(name))
		})
	}
}

func TestCheckContributionBranch(t *testing.T) {
	tests := []struct {
		name    string
		branch  string
		wantErr bool
	}{
		{"empty", "", true},
		{"blank", "   ", true},
		{"default branch", "main", true},
		{"default branch full ref", "refs/heads/main", true},
		{"other full ref", "refs/heads/knowledge-abc", true},
		{"malformed", "bad..name", true},
		{"contribution", "knowledge-abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckContributionBranch("publish", tt.branch, "main")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, KindInvalidInput, KindOf(err))
		})
	}
}
