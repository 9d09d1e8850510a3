package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/manifoldco/promptui"
)

var ErrInvalidClientId = errors.New("not a well-formed GUID")

// ValidClientId accepts standard GUID text (8-4-4-4-12 hexadecimal groups),
// with or without surrounding braces. Anything else is rejected before any
// network call is made.
func ValidClientId(candidate string) error {
	trimmed := candidate
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "{"), "}")
	}

	if !govalidator.IsUUID(strings.ToLower(trimmed)) {
		return ErrInvalidClientId
	}
	return nil
}

// Normalize strips optional braces from a validated GUID.
func Normalize(clientId string) string {
	return strings.Trim(clientId, "{}")
}

// ClientId prompts for the target application's client ID until a well-formed
// GUID is entered.
func ClientId() (string, error) {
	p := promptui.Prompt{
		Label:    "Application (client) ID",
		Validate: ValidClientId,
	}

	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("reading client id: %w", err)
	}

	return Normalize(result), nil
}

// Confirm asks for a Y/N confirmation. A negative answer is not an error;
// it returns false so the caller can exit cleanly without mutating anything.
func Confirm(label string) (bool, error) {
	return confirm(label, nil)
}

// ConfirmWithStdin is Confirm reading from the given source instead of the
// terminal.
func ConfirmWithStdin(label string, stdin io.ReadCloser) (bool, error) {
	return confirm(label, stdin)
}

func confirm(label string, stdin io.ReadCloser) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     stdin,
	}

	_, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	return true, nil
}
