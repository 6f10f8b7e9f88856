/*
Package gfio opens the files named by commandline flags, standing in stdin
and stdout for the "stdin" and "stdout" (or "-") values, and names the flag
in the error when a path is bad
*/
package gfio

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
)

const (
	Stdin  = "stdin"
	Stdout = "stdout"
)

func flagString(flag pflag.Flag) string {
	if len(flag.Shorthand) == 0 {
		return "--" + flag.Name
	}
	return "--" + flag.Name + " / -" + flag.Shorthand
}

// parseErr puts the flag between the operation and the path of a PathError
func parseErr(err error, flag pflag.Flag) error {
	var x *fs.PathError
	if errors.As(err, &x) {
		return errors.New(x.Op + " " + flagString(flag) + " " + x.Path + ": " + x.Err.Error())
	}
	return err
}

// OpenIn opens the file the flag names for reading
func OpenIn(flag pflag.Flag) (*os.File, error) {
	inFile := flag.Value.String()
	if inFile == Stdin || inFile == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(inFile)
	if err != nil {
		return nil, parseErr(err, flag)
	}
	return f, nil
}

// OpenOut creates the file the flag names for writing
func OpenOut(flag pflag.Flag) (*os.File, error) {
	outFile := flag.Value.String()
	if outFile == Stdout || outFile == "-" {
		return os.Stdout, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, parseErr(err, flag)
	}
	return f, nil
}
