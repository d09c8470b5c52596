package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/MrEthical07/passy"
	"github.com/MrEthical07/passy/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestGenerateDefaults(t *testing.T) {
	out, _, err := run(t, "", "generate")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 1)
	assert.Equal(t, passy.DefaultPolicy().Length, utf8.RuneCountInString(got[0]))

	cs := passy.BuildCharset(passy.DefaultPolicy())
	for _, r := range got[0] {
		assert.True(t, cs.Contains(r), "unexpected %q", r)
	}
}

func TestGenerateCountAndLength(t *testing.T) {
	out, _, err := run(t, "", "generate", "-l", "40", "-c", "5", "--symbols=false")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 5)
	for _, pw := range got {
		assert.Len(t, pw, 40)
		for _, r := range pw {
			assert.Contains(t, passy.AlphanumericAlphabet, string(r))
		}
	}
}

func TestGenerateDigitsOnlyViaAlphaFalse(t *testing.T) {
	out, _, err := run(t, "", "generate", "--alpha=false", "--symbols=false", "-l", "6")
	require.NoError(t, err)

	pw := strings.TrimSpace(out)
	require.Len(t, pw, 6)
	for _, r := range pw {
		assert.Contains(t, "346789", string(r), "digits minus ambiguous ones")
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	_, _, err := run(t, "", "generate", "-c", "0")
	assert.ErrorContains(t, err, "--count")
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	a, stderr, err := run(t, "", "generate", "--source", "seeded", "--seed", "7", "-c", "3")
	require.NoError(t, err)
	assert.Contains(t, stderr, "deterministic")

	b, _, err := run(t, "", "generate", "--source", "seeded", "--seed", "7", "-c", "3")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	pws := lines(a)
	assert.NotEqual(t, pws[0], pws[1], "calls within a run draw from different seeds")
}

func TestGenerateUnknownSource(t *testing.T) {
	_, _, err := run(t, "", "generate", "--source", "dice")
	assert.ErrorIs(t, err, passy.ErrInvalidConfig)
}

func TestGenerateJSON(t *testing.T) {
	out, _, err := run(t, "", "generate", "--json", "-l", "20")
	require.NoError(t, err)

	var res []generatedPassword
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 1)
	assert.Equal(t, passy.EstimateStrength(res[0].Password), res[0].Strength)
}

func TestStrength(t *testing.T) {
	cases := []struct {
		args  []string
		stdin string
		want  string
	}{
		{[]string{"strength", "aaaaaaaaaa"}, "", "Fair"},
		{[]string{"strength", "Aa1!Aa1!Aa1!"}, "", "Good"},
		{[]string{"strength"}, "Aa1!Aa1!Aa1!Aa1!\n", "Strong"},
		{[]string{"strength"}, "", "Weak (0.0 bits, 0%)"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " ")+"/"+tc.want, func(t *testing.T) {
			out, _, err := run(t, tc.stdin, tc.args...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tc.want), "got %q", out)
		})
	}
}

func TestStrengthDetailJSON(t *testing.T) {
	out, _, err := run(t, "", "strength", "--json", "--detail", "--hint", "alice", "alice2024")
	require.NoError(t, err)

	var res struct {
		Label  string        `json:"label"`
		Advice *passy.Advice `json:"advice"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Advice)
	assert.True(t, res.Advice.Weak)
}

func TestPreview(t *testing.T) {
	out, _, err := run(t, "", "preview", "-l", "12", "--json")
	require.NoError(t, err)

	var res previewResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	p := passy.DefaultPolicy()
	p.Length = 12
	assert.Equal(t, passy.EstimatePolicyStrength(p), res.StrengthReport)
	assert.Equal(t, passy.BuildCharset(p).Len(), res.CharsetSize)
}

func TestPreviewReportsFastPathCharset(t *testing.T) {
	// Without symbols the sampler draws from all 62 alphanumerics, ambiguous
	// characters included, even though --avoid-ambiguous defaults on.
	out, _, err := run(t, "", "preview", "--symbols=false", "-l", "500", "--json")
	require.NoError(t, err)

	var res previewResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, len(passy.AlphanumericAlphabet), res.CharsetSize)

	out, _, err = run(t, "", "generate", "--symbols=false", "-l", "500", "--source", "seeded", "--seed", "1")
	require.NoError(t, err)
	pw := strings.TrimSpace(out)
	assert.True(t, strings.ContainsAny(pw, passy.AmbiguousChars))
	for _, r := range pw {
		assert.True(t, passy.SamplingCharset(passy.Policy{UseLower: true, UseUpper: true, UseDigits: true}).Contains(r))
	}
}

func TestTokenVerifies(t *testing.T) {
	secret := "cli-test-secret-cli-test-secret!"
	out, _, err := run(t, "", "token", "--secret", secret, "--subject", "desk-1")
	require.NoError(t, err)

	mgr, err := jwt.NewManager(jwt.Config{Secret: []byte(secret), TTL: 1})
	require.NoError(t, err)
	claims, err := mgr.Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "desk-1", claims.Subject)
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv(secretEnv, "")
	_, _, err := run(t, "", "token")
	assert.ErrorContains(t, err, "no secret")
}

func TestInteractive(t *testing.T) {
	// length, lower, upper, digits, symbols, avoid, count
	stdin := "10\ny\nn\nn\nn\nn\n3\n"
	out, _, err := run(t, stdin)
	require.NoError(t, err)

	assert.Contains(t, out, "interactive mode")
	assert.Contains(t, out, "Expected strength: Fair")

	got := lines(out)
	pws := got[len(got)-3:]
	for _, pw := range pws {
		require.Len(t, pw, 10)
		for _, r := range pw {
			assert.True(t, r >= 'a' && r <= 'z', "unexpected %q in %q", r, pw)
		}
	}
}

func TestInteractiveDefaultsOnEmptyInput(t *testing.T) {
	out, _, err := run(t, "\n\n\n\n\n\n\n")
	require.NoError(t, err)

	got := lines(out)
	assert.Equal(t, passy.DefaultPolicy().Length, utf8.RuneCountInString(got[len(got)-1]))
}
