// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package locale translates user-facing messages according to Accept-Language.
package locale

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/danielhkuo/quickly-survey/apperr"
)

// English is first so it wins when nothing matches.
var supported = []language.Tag{language.English, language.Polish}

var matcher = language.NewMatcher(supported)

var polish = map[string]string{
	apperr.MsgSurveyNotFound:     "Ankieta nie została znaleziona",
	apperr.MsgSurveyExpired:      "Ta ankieta wygasła i nie można już jej wypełnić",
	apperr.MsgStatusExpired:      "Ta ankieta wygasła i nie można już zmienić jej statusu",
	apperr.MsgShareLinkForbidden: "Nie masz uprawnień do usunięcia tego linku",
	apperr.MsgAlreadySubmitted:   "Już wypełniłeś tę ankietę. Wielokrotne przesyłanie jest zablokowane.",
	apperr.MsgUnknownQuestion:    "Ankieta została zmodyfikowana: pytanie %s już nie istnieje",
	apperr.MsgUnknownChoice:      "Ankieta została zmodyfikowana: %q nie jest odpowiedzią w pytaniu %s",
	apperr.MsgMissingAnswer:      "Pytanie %s wymaga odpowiedzi",
	apperr.MsgTooManyAnswers:     "Pytanie %s typu %s przyjmuje dokładnie jedną odpowiedź",
	apperr.MsgDuplicateChoice:    "Odpowiedź %q została wybrana więcej niż raz w pytaniu %s",
	apperr.MsgQuestionOrder:      "Nie zachowano właściwej kolejności pytań",
	apperr.MsgChoiceOrder:        "Nie zachowano właściwej kolejności odpowiedzi w pytaniu %d",
	apperr.MsgStatusNotSettable:  "Statusu %q nie można ustawić ręcznie",
	apperr.MsgSurveyLocked:       "Ankieta ma już odpowiedzi i nie można jej edytować",
	apperr.MsgShareLinkNotFound:  "Link nie został znaleziony lub wygasł",
	apperr.MsgShareLinkExhausted: "Ten link osiągnął limit odpowiedzi",
	apperr.MsgChoicesRequired:    "Pytanie %d typu %s wymaga co najmniej jednej odpowiedzi do wyboru",
	apperr.MsgChoicesNotAllowed:  "Pytanie %d typu %s nie przyjmuje odpowiedzi do wyboru",
	apperr.MsgDuplicateOption:    "Pytanie %d zawiera odpowiedź %q więcej niż raz",
	apperr.MsgInvalidBody:        "Nieprawidłowy JSON",
	apperr.MsgInvalidField:       "Pole %s nie spełnia reguły %s",
	apperr.MsgUnauthorized:       "Wymagany jest prawidłowy token właściciela",
	apperr.MsgForbidden:          "Nie jesteś właścicielem tej ankiety",
	apperr.MsgDatabase:           "Błąd bazy danych",
}

func init() {
	for key, msg := range polish {
		if err := message.SetString(language.Polish, key, msg); err != nil {
			panic(err)
		}
	}
}

// Printer returns a printer for the best supported language of the request.
func Printer(r *http.Request) *message.Printer {
	return message.NewPrinter(Match(r.Header.Get("Accept-Language")))
}

// Match picks the supported language closest to an Accept-Language header value.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Message renders an application error in the printer's language.
func Message(p *message.Printer, err *apperr.Error) string {
	return p.Sprintf(err.Message, err.Args...)
}
