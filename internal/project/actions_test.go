package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferAction_Table(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Login", "login"},
		{"Sign In", "login"},
		{"Sign Up Free", "register"},
		{"Register Now", "register"},
		{"Contact Us", "contact"},
		{"Reach Out", "contact"},
		{"Learn More", "detail"},
		{"Start Here", "get_started"},
		{"Begin Your Journey", "get_started"},
		{"Explore Features", "features"},
		{"About The Team", "about"},
		{"Buy Now", "detail"}, // no rule matches, default
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, InferAction(tc.text, nil))
		})
	}
}

func TestInferAction_FirstMatchWins(t *testing.T) {
	// "Login to learn more" matches both the login rule and the detail rule;
	// the login rule comes first in the table.
	assert.Equal(t, "login", InferAction("Login to learn more", nil))
}

func TestInferAction_CustomRules(t *testing.T) {
	rules := []ActionRule{{Keywords: []string{"checkout"}, Action: "purchase"}}
	assert.Equal(t, "purchase", InferAction("Checkout", rules))
	assert.Equal(t, ActionDetail, InferAction("Login", rules))
}
