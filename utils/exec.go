package utils

import (
	"os/exec"
	"strings"

	"github.com/evilsocket/islazy/str"
)

func Exec(executable string, args []string) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", err
	}

	raw, err := exec.Command(path, args...).CombinedOutput()
	if err != nil {
		return strings.TrimSpace(string(raw)), err
	}
	return str.Trim(string(raw)), nil
}
