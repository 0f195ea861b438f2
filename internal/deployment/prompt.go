/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package deployment

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/manifoldco/promptui"
)

// prompter asks the operator for parameters before each stage. In
// non-interactive mode every answer falls back to the preset value.
type prompter struct {
	nonInteractive bool
}

func (p *prompter) askString(label, preset string) (string, error) {
	if p.nonInteractive {
		return preset, nil
	}

	prompt := promptui.Prompt{
		Label:   label,
		Default: preset,
	}

	result, err := prompt.Run()
	if err != nil {
		return "", wrapPromptErr(err)
	}

	return strings.TrimSpace(result), nil
}

func (p *prompter) askRequiredString(label, preset string) (string, error) {
	if p.nonInteractive {
		if preset == "" {
			return "", merry.Errorf("'%s' is required in non-interactive mode", label)
		}

		return preset, nil
	}

	prompt := promptui.Prompt{
		Label:   label,
		Default: preset,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("input must not be empty")
			}

			return nil
		},
	}

	result, err := prompt.Run()
	if err != nil {
		return "", wrapPromptErr(err)
	}

	return strings.TrimSpace(result), nil
}

func (p *prompter) askPassword(label, preset string) (string, error) {
	if p.nonInteractive {
		return preset, nil
	}

	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}

	result, err := prompt.Run()
	if err != nil {
		return "", wrapPromptErr(err)
	}

	if result == "" {
		return preset, nil
	}

	return result, nil
}

func (p *prompter) askInt(label string, preset int) (int, error) {
	if p.nonInteractive {
		return preset, nil
	}

	prompt := promptui.Prompt{
		Label:   label,
		Default: strconv.Itoa(preset),
		Validate: func(input string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(input)); err != nil {
				return errors.New("input must be a number")
			}

			return nil
		},
	}

	result, err := prompt.Run()
	if err != nil {
		return 0, wrapPromptErr(err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(result))
	if err != nil {
		return 0, merry.Wrap(err)
	}

	return value, nil
}

func (p *prompter) askConfirm(label string, preset bool) (bool, error) {
	if p.nonInteractive {
		return preset, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, wrapPromptErr(err)
	}

	return true, nil
}

func (p *prompter) askSelect(label string, items []string) (string, error) {
	if p.nonInteractive {
		return items[0], nil
	}

	prompt := promptui.Select{
		Label: label,
		Items: items,
	}

	_, result, err := prompt.Run()
	if err != nil {
		return "", wrapPromptErr(err)
	}

	return result, nil
}

func wrapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		return merry.Prepend(err, "interrupted")
	}

	return merry.Prepend(err, "prompt failed")
}
