package service

import (
	"net/mail"
	"strings"

	"fitbuzz/fitness-api/internal/domain"
)

// Field validators shared by the auth flows. Each helper appends to the
// caller's field-error map; an empty map means the input is valid.

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// normalizeEmail trims and lowercases, the canonical stored form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(fields map[string]string, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		fields["name"] = "Name field is required"
	} else if len(name) < 2 || len(name) > 30 {
		fields["name"] = "Name must be between 2 and 30 characters"
	}
}

func validateEmailField(fields map[string]string, email string) {
	if strings.TrimSpace(email) == "" {
		fields["email"] = "Email field is required"
	} else if !validEmail(normalizeEmail(email)) {
		fields["email"] = "Email is invalid"
	}
}

func validatePassword(fields map[string]string, password string) {
	if password == "" {
		fields["password"] = "Password field is required"
	} else if len(password) < 6 || len(password) > 30 {
		fields["password"] = "Password must be between 6 and 30 characters"
	}
}

func validateFitnessGoal(fields map[string]string, goal domain.FitnessGoal) {
	if !goal.Valid() {
		fields["fitnessGoal"] = "Invalid fitness goal selected"
	}
}

func validateAge(fields map[string]string, age int) {
	if age < domain.MinAge || age > domain.MaxAge {
		fields["age"] = "Age must be between 13 and 120"
	}
}

func validateWeight(fields map[string]string, weight float64) {
	if weight < domain.MinWeightKg || weight > domain.MaxWeightKg {
		fields["weight"] = "Weight must be between 20 and 500 kg"
	}
}

func validateHeight(fields map[string]string, height float64) {
	if height < domain.MinHeightCm || height > domain.MaxHeightCm {
		fields["height"] = "Height must be between 100 and 250 cm"
	}
}
