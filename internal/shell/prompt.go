package shell

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/basket/internal/export"
	"github.com/mesh-intelligence/basket/internal/validate"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// ask prompts until parse accepts the input. Rejections, over-long lines
// included, print a hint and prompt again; only a read error (io.EOF
// included) ends the loop.
func ask[T any](s *Shell, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil && !errors.Is(err, errLineTooLong) {
			var zero T
			return zero, err
		}
		if err == nil {
			v, perr := parse(line)
			if perr == nil {
				return v, nil
			}
			err = perr
		}
		s.log.Debug("input rejected", zap.String("prompt", prompt), zap.Error(err))
		s.println(hint(err))
	}
}

// hints maps input errors to the message shown to the user.
var hints = []struct {
	err error
	msg string
}{
	{validate.ErrEmptyText, "Please enter some text."},
	{validate.ErrNotInteger, "Please enter an Integer"},
	{validate.ErrNotNumber, "Please enter a number"},
	{validate.ErrNotPositive, "Please enter a number bigger than 0"},
	{validate.ErrNotBoolean, "Please enter a Boolean value (True/False)"},
	{validate.ErrDateFormat, "Incorrect date format, should be DD/MM/YYYY"},
	{validate.ErrExpired, "This product has expired! Enter a date in the future."},
	{validate.ErrUnknownCategory, "Please enter a valid type [" + joinCategories() + "]"},
	{validate.ErrUnknownSize, "Please enter a valid size [" + joinSizes() + "]!"},
	{validate.ErrUnknownGender, "Please enter either 'f' or 'm'."},
	{validate.ErrIDLength, "Please make sure the ID number is 13 digits"},
	{types.ErrDuplicateID, "This ID number already exists!"},
	{export.ErrEmptyFilename, "Please enter a file name."},
	{export.ErrInvalidFilename, "Please enter a file name without slashes."},
	{errLineTooLong, "That input is too long. Please try again."},
}

func hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.err) {
			return h.msg
		}
	}
	return "Invalid input: " + err.Error()
}

func joinCategories() string {
	names := make([]string, len(types.Categories))
	for i, c := range types.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func joinSizes() string {
	names := make([]string, len(types.Sizes))
	for i, sz := range types.Sizes {
		names[i] = string(sz)
	}
	return strings.Join(names, ", ")
}
