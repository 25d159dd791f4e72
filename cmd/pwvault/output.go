package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/TheMichaelB/pwvault/internal/models"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

func printSuccess(format string, args ...interface{}) {
	successColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printWarning(format string, args ...interface{}) {
	warnColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	infoColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		printError("marshal output: %v", err)
		return
	}
	fmt.Println(string(data))
}

// reportError maps engine failures to user-visible messages. Beyond
// the top-level categories, the message never says why a decode
// failed: an attacker with file access gets no oracle.
func reportError(err error) {
	switch {
	case errors.Is(err, models.ErrAuthentication):
		printError("Cannot unlock vault: wrong passphrase or corrupted file.")
	case errors.Is(err, models.ErrIntegrity):
		printError("Vault file is not a valid vault container.")
	case errors.Is(err, models.ErrVaultExists):
		printError("A vault already exists at that path.")
	case errors.Is(err, models.ErrVaultNotFound):
		printError("No vault found at that path. Run 'pwvault init' first.")
	default:
		printError("Error: %v", err)
	}
}

// promptPassphrase reads a passphrase without echo.
func promptPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", err
	}
	return string(pass), nil
}

// resolvePassphrase returns the --passphrase flag value or prompts.
func resolvePassphrase(prompt string) (string, error) {
	if passphrase != "" {
		return passphrase, nil
	}

	pass, err := promptPassphrase(prompt)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return pass, nil
}

// confirmPassphrase prompts twice and requires both reads to match.
func confirmPassphrase() (string, error) {
	if passphrase != "" {
		return passphrase, nil
	}

	first, err := promptPassphrase("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}

	second, err := promptPassphrase("Confirm passphrase: ")
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}

	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}
