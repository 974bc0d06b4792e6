package service

import (
	"strings"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/model"
)

// Form validators return nil or a single field-tagged validation error.
// They never touch the session; a failed submission changes nothing.

const minPasswordLength = 6

// ValidateLogin checks the sign-in form. The password is required but its
// content is never inspected.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.ValidationFailed("email", "Email is required")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "Password is required")
	}
	return nil
}

// ValidateRegistration checks the sign-up form. The mismatch check runs
// before the length check, so "abc"/"abd" reports the mismatch.
func ValidateRegistration(reg model.Registration) error {
	if strings.TrimSpace(reg.Name) == "" {
		return apperror.ValidationFailed("name", "Name is required")
	}
	if strings.TrimSpace(reg.Email) == "" {
		return apperror.ValidationFailed("email", "Email is required")
	}
	if reg.Password != reg.ConfirmPassword {
		return apperror.ValidationFailed("confirmPassword", "Passwords do not match")
	}
	if len(reg.Password) < minPasswordLength {
		return apperror.ValidationFailed("password", "Password must be at least 6 characters")
	}
	return nil
}

func ValidateReview(r model.Review) error {
	if r.Rating == 0 {
		return apperror.ValidationFailed("rating", "Please select a rating")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return apperror.ValidationFailed("rating", "Rating must be between 1 and 5")
	}
	return nil
}

// editableProfileFields are the keys a member may change from the profile page.
var editableProfileFields = map[string]bool{
	"name":          true,
	"location":      true,
	"bio":           true,
	"skillsOffered": true,
	"skillsWanted":  true,
	"availability":  true,
	"isPublic":      true,
}

// ValidateProfilePatch rejects keys outside the editable set before the
// patch reaches the session.
func ValidateProfilePatch(patch map[string]any) error {
	if len(patch) == 0 {
		return apperror.ValidationFailed("", "Nothing to update")
	}
	for k := range patch {
		if !editableProfileFields[k] {
			return apperror.ValidationFailed(k, "Unknown profile field")
		}
	}
	return nil
}

// ValidateProfile checks a whole Session User after a merge.
func ValidateProfile(u *model.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return apperror.ValidationFailed("name", "Name cannot be empty")
	}
	if u.Rating < 0 || u.Rating > 5 {
		return apperror.ValidationFailed("rating", "Rating must be between 0 and 5")
	}
	return nil
}

func ValidateSwapDraft(d model.SwapDraft) error {
	if strings.TrimSpace(d.MemberID) == "" {
		return apperror.ValidationFailed("memberId", "Choose a member to swap with")
	}
	if strings.TrimSpace(d.SkillOffered) == "" {
		return apperror.ValidationFailed("skillOffered", "Skill offered is required")
	}
	if strings.TrimSpace(d.SkillWanted) == "" {
		return apperror.ValidationFailed("skillWanted", "Skill wanted is required")
	}
	return nil
}
