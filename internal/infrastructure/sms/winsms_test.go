package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbenali/boutique-api/pkg/config"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"20123456", "21620123456", true},
		{"21620123456", "21620123456", true},
		{"+21620123456", "21620123456", true},
		{"0021620123456", "21620123456", true},
		{" 20 123 456 ", "21620123456", true},
		{"+216 20 123 456", "21620123456", true},
		{"", "", false},
		{"1234567", "", false},         // trop court
		{"201234567", "", false},       // 9 chiffres, ni local ni international
		{"33612345678", "", false},     // indicatif étranger
		{"2161234567a", "", false},     // non numérique
		{"216201234567", "", false},    // trop long
	}
	for _, c := range cases {
		got, ok := NormalizePhone(c.in)
		assert.Equal(t, c.ok, ok, "entrée %q", c.in)
		assert.Equal(t, c.want, got, "entrée %q", c.in)
	}
}

func TestSend_PousseVersLaPasserelle(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"action":  q.Get("action"),
			"api_key": q.Get("api_key"),
			"to":      q.Get("to"),
			"from":    q.Get("from"),
			"sms":     q.Get("sms"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewWinSMSGateway(config.SMSConfig{
		APIURL:   srv.URL,
		APIKey:   "cle-test",
		SenderID: "BOUTIQUE",
	})
	err := g.Send(context.Background(), "+216 20 123 456", "Bienvenue !")
	require.NoError(t, err)

	assert.Equal(t, "send-sms", gotQuery["action"])
	assert.Equal(t, "cle-test", gotQuery["api_key"])
	assert.Equal(t, "21620123456", gotQuery["to"])
	assert.Equal(t, "BOUTIQUE", gotQuery["from"])
	assert.Equal(t, "Bienvenue !", gotQuery["sms"])
}

func TestSend_NumeroInvalideIgnore(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	g := NewWinSMSGateway(config.SMSConfig{APIURL: srv.URL, APIKey: "k", SenderID: "s"})
	err := g.Send(context.Background(), "pas-un-numero", "msg")
	require.NoError(t, err)
	assert.False(t, called, "la passerelle ne doit pas être appelée")
}

func TestSend_ErreurPasserelleRemontee(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewWinSMSGateway(config.SMSConfig{APIURL: srv.URL, APIKey: "k", SenderID: "s"})
	err := g.Send(context.Background(), "20123456", "msg")
	require.Error(t, err)
}
