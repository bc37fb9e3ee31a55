package parse

import "github.com/google/shlex"

// Split breaks a command string into raw tokens using POSIX shell quoting rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
