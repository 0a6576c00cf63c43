package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

func TestDefaultPasswordPolicy(t *testing.T) {
	t.Parallel()
	policy := validator.DefaultPasswordPolicy()

	assert.Equal(t, 10, policy.MinLength)
	assert.Equal(t, validator.DefaultSpecialChars, policy.SpecialChars)
}

func TestPasswordPolicy_Rules(t *testing.T) {
	t.Parallel()
	policy := validator.DefaultPasswordPolicy()

	t.Run("valid passwords", func(t *testing.T) {
		for _, password := range []string{
			"Str0ng!Pass",
			"Abcdefghi1?",
			"ZZZZZZZZZ9/",
			`Quote"Mark1`,
			`Back\slash1`,
		} {
			err := validator.Apply(policy.Rules("password", password)...)
			assert.NoError(t, err, "password should be accepted: %s", password)
		}
	})

	t.Run("each requirement is reported by its own key", func(t *testing.T) {
		cases := map[string]string{
			"Sh0rt!":        "validation.min_length",
			"lowercase1!x":  "validation.password_uppercase",
			"NoDigitsHere!": "validation.password_digit",
			"NoSpecial123":  "validation.password_special",
		}
		for password, key := range cases {
			err := validator.Apply(policy.Rules("password", password)...)
			require.Error(t, err, password)

			errs := validator.ExtractValidationErrors(err)
			require.Len(t, errs, 1, password)
			assert.Equal(t, key, errs[0].TranslationKey, password)
		}
	})

	t.Run("tilde and backtick are outside the special set", func(t *testing.T) {
		err := validator.Apply(validator.PasswordSpecialCharIn("password", "Abcdefgh1~`", validator.DefaultSpecialChars))
		assert.Error(t, err)
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		err := validator.Apply(validator.MinRunes("password", "Pässwörd!1", 10))
		assert.NoError(t, err)
		err = validator.Apply(validator.MinRunes("password", "Pässwörd!", 10))
		assert.Error(t, err)
	})

	t.Run("zero policy falls back to defaults", func(t *testing.T) {
		rules := validator.PasswordPolicy{}.Rules("password", "Str0ng!Pass")
		require.Len(t, rules, 4)
		assert.NoError(t, validator.Apply(rules...))
		assert.Error(t, validator.Apply(validator.PasswordPolicy{}.Rules("password", "Str0ng!")...))
	})

	t.Run("custom special set", func(t *testing.T) {
		policy := validator.PasswordPolicy{MinLength: 4, SpecialChars: "~"}
		assert.NoError(t, validator.Apply(policy.Rules("password", "Ab1~")...))
		assert.Error(t, validator.Apply(policy.Rules("password", "Ab1!")...))
	})
}
