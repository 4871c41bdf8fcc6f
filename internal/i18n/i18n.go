// Package i18n holds the user-facing strings of the chat widget and their
// translations.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key; %s placeholders take
// pre-rendered HTML.
const (
	MsgPersonal       = "Sorry, I'm not allowed to answer personal related questions. Please, contact the support: %s"
	MsgDevopsError    = "It seems to be a generic problem. Please, contact the support: %s"
	MsgNoAnswer       = "Sorry, I can't answer your question right now. Please, contact the support: %s"
	MsgRelevantLink   = "The information on this link might be relevant to your problem: %s"
	MsgUnavailable    = "I'm currently not available. Please, contact the support: %s"
	MsgHello          = "Hello!"
	MsgHowCanIHelp    = "How can I help you today?"
	MsgNotSetUp       = "The interface is not yet set up. Please, contact the site administrators."
	MsgDefaultHeader  = "Search assistant"
	MsgPlaceholder    = "How can we help?"
	MsgSend           = "Send"
	MsgYou            = "You"
	MsgSingleHostOnly = "Currently, we only support a single host. This means that only the first entry will be used."
)

var supported = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(supported)

var german = map[string]string{
	MsgPersonal:       "Leider darf ich keine persönlichen Fragen beantworten. Bitte wenden Sie sich an den Support: %s",
	MsgDevopsError:    "Das scheint ein allgemeines Problem zu sein. Bitte wenden Sie sich an den Support: %s",
	MsgNoAnswer:       "Leider kann ich Ihre Frage gerade nicht beantworten. Bitte wenden Sie sich an den Support: %s",
	MsgRelevantLink:   "Die Informationen unter diesem Link könnten für Ihr Problem hilfreich sein: %s",
	MsgUnavailable:    "Ich bin zurzeit nicht erreichbar. Bitte wenden Sie sich an den Support: %s",
	MsgHello:          "Hallo!",
	MsgHowCanIHelp:    "Wie kann ich Ihnen heute helfen?",
	MsgNotSetUp:       "Die Oberfläche ist noch nicht eingerichtet. Bitte wenden Sie sich an die Administratoren der Seite.",
	MsgDefaultHeader:  "Suchassistent",
	MsgPlaceholder:    "Wie können wir helfen?",
	MsgSend:           "Senden",
	MsgYou:            "Sie",
	MsgSingleHostOnly: "Derzeit wird nur ein einzelner Host unterstützt. Es wird nur der erste Eintrag verwendet.",
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range german {
		if err := b.SetString(language.German, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// Negotiate returns the best supported match of the given language
// preference (an Accept-Language value or a plain tag).
func Negotiate(preference string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// NewPrinter returns a printer for the negotiated language.
func NewPrinter(preference string) *message.Printer {
	return message.NewPrinter(Negotiate(preference), message.Catalog(messages))
}

// FromRequest negotiates the printer from the request's Accept-Language.
func FromRequest(r *http.Request) *message.Printer {
	return NewPrinter(r.Header.Get("Accept-Language"))
}
