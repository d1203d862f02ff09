package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// validBranchNameChars matches valid characters for contribution branch names
var validBranchNameChars = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

// ValidateBranchName checks a contribution branch name against git ref rules.
// Returns nil if valid, an error naming the broken rule otherwise.
//
// Rules enforced:
// - Cannot start with '.', '/', '-' or 'refs/'
// - Cannot end with '.lock', '.', '/' or '-'
// - Cannot contain '..', '//' or '@{'
// - Only alphanumerics, '.', '_', '-' and '/' are allowed
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}

	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("branch name cannot start with '.'")
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("branch name cannot start with '/'")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch name cannot start with '-'")
	}
	if strings.HasPrefix(name, "refs/") {
		return fmt.Errorf("branch name must be a short name, not a full 'refs/' reference")
	}

	if strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("branch name cannot end with '.lock'")
	}
	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name cannot end with '.'")
	}
	if strings.HasSuffix(name, "/") {
		return fmt.Errorf("branch name cannot end with '/'")
	}
	if strings.HasSuffix(name, "-") {
		return fmt.Errorf("branch name cannot end with '-'")
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name cannot contain '..'")
	}
	if strings.Contains(name, "//") {
		return fmt.Errorf("branch name cannot contain '//'")
	}
	if strings.Contains(name, "@{") {
		return fmt.Errorf("branch name cannot contain '@{'")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("branch name cannot contain control characters")
		}
	}

	if !validBranchNameChars.MatchString(name) {
		return fmt.Errorf("branch name contains invalid characters (only alphanumeric, '.', '_', '-', '/' allowed)")
	}

	return nil
}

// CheckContributionBranch rejects names that may never be used as a
// contribution branch: empty, malformed, or the protected default branch.
func CheckContributionBranch(op, name, defaultBranch string) error {
	if strings.TrimSpace(name) == "" {
		return InvalidInputError(op, fmt.Errorf("branch name is required"))
	}
	if name == defaultBranch || strings.TrimPrefix(name, "refs/heads/") == defaultBranch {
		return &Error{
			Branch: name,
			Err:    fmt.Errorf("%q is the protected default branch", name),
			Kind:   KindInvalidInput,
			Op:     op,
		}
	}
	if err := ValidateBranchName(name); err != nil {
		return &Error{Branch: name, Err: err, Kind: KindInvalidInput, Op: op}
	}
	return nil
}
