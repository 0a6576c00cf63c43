package environment

import (
	"errors"
	"fmt"
	"strings"
)

// Environment is the deployment environment the tool runs against.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

var ErrUnknownEnvironment = errors.New("environment: unknown environment")

// Parse accepts the full names and the short forms dev, stage and prod.
// An empty string means Development.
func Parse(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "development", "dev":
		return Development, nil
	case "staging", "stage":
		return Staging, nil
	case "production", "prod":
		return Production, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
}

func (e Environment) String() string {
	return string(e)
}
