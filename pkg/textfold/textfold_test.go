package textfold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hbenali/boutique-api/pkg/textfold"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Protéine Whey":     "proteine whey",
		"CRÉATINE  ":        "creatine",
		"Gélules Oméga-3":   "gelules omega-3",
		"deja normalise":    "deja normalise",
		"":                  "",
		"  Thé à la menthe": "the a la menthe",
	}
	for in, want := range cases {
		assert.Equal(t, want, textfold.Fold(in), "entrée %q", in)
	}
}
