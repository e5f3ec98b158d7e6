package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	tests := []struct {
		name string
		mode Difficulty
		want Settings
	}{
		{
			name: "Easy defaults",
			mode: Easy,
			want: Settings{Difficulty: Easy, Title: "Easy", BudgetMultiplier: 2},
		},
		{
			name: "Hard defaults",
			mode: Hard,
			want: Settings{Difficulty: Hard, Title: "Hard", BudgetMultiplier: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultSettings(tt.mode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    Difficulty
		wantErr bool
	}{
		{"Easy", Easy, false},
		{"Hard", Hard, false},
		{"Empty", "", true},
		{"English label is not a stored label", "Easy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		label   string
		want    Difficulty
		wantErr bool
	}{
		{"Facile", Easy, false},
		{"difficile", Hard, false},
		{" EASY ", Easy, false},
		{"hard", Hard, false},
		{"medium", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := Parse(tt.label)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChoice(t *testing.T) {
	got, err := ParseChoice("1")
	assert.NoError(t, err)
	assert.Equal(t, Easy, got)

	got, err = ParseChoice(" 2\n")
	assert.NoError(t, err)
	assert.Equal(t, Hard, got)

	_, err = ParseChoice("3")
	assert.Error(t, err)
}

func TestBudgetMultiplier(t *testing.T) {
	assert.Equal(t, 2, BudgetMultiplier(Easy))
	assert.Equal(t, 1, BudgetMultiplier(Hard))
	assert.True(t, IsEasy(Easy))
	assert.False(t, IsEasy(Hard))
}
