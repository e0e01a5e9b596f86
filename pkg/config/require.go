package config

import (
	"fmt"
	"unicode/utf8"
)

func RequireNonEmpty(value, envName string) error {
	if value == "" {
		return fmt.Errorf("missing required env %s", envName)
	}
	return nil
}

func RequireMinLen(value, envName string, min int) error {
	if utf8.RuneCountInString(value) < min {
		return fmt.Errorf("env %s must be at least %d characters long", envName, min)
	}
	return nil
}
