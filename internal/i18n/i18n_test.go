package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPrinter_English(t *testing.T) {
	p := NewPrinter("")
	assert.Equal(t, "Hello!", p.Sprintf(MsgHello))
	assert.Equal(t,
		"It seems to be a generic problem. Please, contact the support: <a>x</a>",
		p.Sprintf(MsgDevopsError, "<a>x</a>"),
	)
}

func TestNewPrinter_German(t *testing.T) {
	tests := []string{"de", "de-DE", "de-CH,de;q=0.9,en;q=0.8"}

	for _, pref := range tests {
		t.Run(pref, func(t *testing.T) {
			p := NewPrinter(pref)
			assert.Equal(t, "Hallo!", p.Sprintf(MsgHello))
			assert.Equal(t, "Senden", p.Sprintf(MsgSend))
		})
	}
}

func TestNewPrinter_UnsupportedFallsBackToEnglish(t *testing.T) {
	p := NewPrinter("ja-JP")
	assert.Equal(t, "Search assistant", p.Sprintf(MsgDefaultHeader))

	p = NewPrinter("%%%invalid")
	assert.Equal(t, "Send", p.Sprintf(MsgSend))
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/chat", nil)
	req.Header.Set("Accept-Language", "de")
	assert.Equal(t, "Sie", FromRequest(req).Sprintf(MsgYou))
}

func TestGermanCatalogCoversEveryKey(t *testing.T) {
	keys := []string{
		MsgPersonal, MsgDevopsError, MsgNoAnswer, MsgRelevantLink, MsgUnavailable,
		MsgHello, MsgHowCanIHelp, MsgNotSetUp, MsgDefaultHeader, MsgPlaceholder,
		MsgSend, MsgYou, MsgSingleHostOnly,
	}
	for _, k := range keys {
		assert.Contains(t, german, k)
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, "de", Negotiate("de-AT").String())
	assert.Equal(t, "en", Negotiate("fr").String())
	assert.Equal(t, "en", Negotiate("").String())
}
