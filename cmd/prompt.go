package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm asks on a.in and accepts only an exact "Y".
func (a *app) confirm(prompt string) (bool, error) {
	fmt.Fprint(a.out, prompt)
	reader := bufio.NewReader(a.in)
	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.TrimRight(answer, "\r\n") == "Y", nil
}
