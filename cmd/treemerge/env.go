package main

import (
	"os"
	"strconv"
)

// EnvToBool reads an environment variable and parses it as a bool. It
// returns an error if the variable is unset so callers can tell "use the
// flag default" apart from "the variable says false".
func EnvToBool(name string) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false, errEnvUnset(name)
	}
	return strconv.ParseBool(v)
}

// EnvOr returns the named environment variable's value, or fallback if it
// is unset.
func EnvOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

type envUnsetError string

func (e envUnsetError) Error() string {
	return "environment variable " + string(e) + " is not set"
}

func errEnvUnset(name string) error {
	return envUnsetError(name)
}
