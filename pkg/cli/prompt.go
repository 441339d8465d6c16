package cli

import (
	"github.com/manifoldco/promptui"
)

func Input(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
	}

	return prompt.Run()
}

func MustInput(label string) string {
	value, err := Input(label)

	if err != nil {
		Fatal(err)
	}

	return value
}

func Secret(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}

	return prompt.Run()
}

func MustSecret(label string) string {
	value, err := Secret(label)

	if err != nil {
		Fatal(err)
	}

	return value
}

func Select(label string, items []string) (int, string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}

	return prompt.Run()
}

func MustSelect(label string, items []string) (int, string) {
	index, value, err := Select(label, items)

	if err != nil {
		Fatal(err)
	}

	return index, value
}
