package predict

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ml"
	"NewsVerifier/internal/textproc"
)

func trainedContext(t *testing.T) *ServingContext {
	t.Helper()

	docs := []string{
		"markets rally banks surge strong earnings",
		"central bank holds rates steady economists",
		"miracle cure doctors hate secret trick",
		"shocking truth celebrities hide wealth scheme",
	}
	labels := []int{1, 1, 0, 0}

	vec := ml.NewVectorizer()
	vec.Fit(docs)
	clf := ml.NewPassiveAggressive()
	clf.Fit(vec.TransformAll(docs), labels, vec.Dimensions())

	return NewServingContext(&ml.ModelPair{Vectorizer: vec, Classifier: clf})
}

func TestCheckWithoutModel(t *testing.T) {
	t.Parallel()

	ctx := NewServingContext(nil)
	assert.False(t, ctx.Ready())

	_, err := ctx.Check("any text at all")
	require.ErrorIs(t, err, ErrModelUnavailable)

	var nilCtx *ServingContext
	_, err = nilCtx.Check("any text at all")
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestCheckVerdicts(t *testing.T) {
	t.Parallel()

	ctx := trainedContext(t)

	verdict, err := ctx.Check("Markets RALLY as banks post strong earnings!")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictReal, verdict)

	verdict, err = ctx.Check("Miracle cure — the secret trick doctors hate!!!")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictFake, verdict)
}

func TestCheckMappingIsTotal(t *testing.T) {
	t.Parallel()

	ctx := trainedContext(t)
	inputs := []string{
		"markets rally",
		"miracle cure",
		"completely out of vocabulary words",
		"",
		"!!!",
	}

	for _, in := range inputs {
		verdict, err := ctx.Check(in)
		require.NoError(t, err)
		assert.Contains(t, []string{"REAL", "FAKE"}, verdict.String(), "input %q", in)
	}
}

// Prediction must be invariant under pre-normalization: raw input and
// already-normalized input flow through the same Normalize call.
func TestCheckNormalizationIdentity(t *testing.T) {
	t.Parallel()

	ctx := trainedContext(t)
	raw := "  Markets RALLY, banks SURGE!!! "

	fromRaw, err := ctx.Check(raw)
	require.NoError(t, err)
	fromNormalized, err := ctx.Check(textproc.Normalize(raw))
	require.NoError(t, err)

	assert.Equal(t, fromRaw, fromNormalized)
}

func TestLoadMissingArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "v.gob"), filepath.Join(dir, "c.gob"))
	assert.Error(t, err)
}
