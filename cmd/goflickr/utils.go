package main

//
// Utility functions
//

import (
	"errors"
	"os"
	"runtime"
	"strings"
)

// errInvalidPair indicates that a KEY=VALUE pair lacks the = character.
var errInvalidPair = errors.New("invalid key-value pair")

// splitPair takes in input a string in the form KEY=VALUE and splits it.
func splitPair(s string) (string, string, error) {
	v := strings.SplitN(s, "=", 2)
	if len(v) != 2 {
		return "", "", errInvalidPair
	}
	return v[0], v[1], nil
}

// makeMapStringString makes a map from string to string using as input a list
// of key-value pairs used to initialize the map.
func makeMapStringString(input []string) (map[string]string, error) {
	output := make(map[string]string)
	for _, opt := range input {
		key, value, err := splitPair(opt)
		if err != nil {
			return nil, err
		}
		output[key] = value
	}
	return output, nil
}

// gethomedir returns the home directory. If optionsHome is set, then we
// return that string as the home directory. Otherwise, we use typical
// platform-specific environment variables to determine the home. In case
// of failure to determine the home dir, we return an empty string.
func gethomedir(optionsHome string) string {
	if optionsHome != "" {
		return optionsHome
	}
	if runtime.GOOS == "windows" {
		home := os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		return home
	}
	if runtime.GOOS == "linux" {
		home := os.Getenv("XDG_CONFIG_HOME")
		if home != "" {
			return home
		}
	}
	return os.Getenv("HOME")
}
