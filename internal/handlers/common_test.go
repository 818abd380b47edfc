package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestJsonBody(t *testing.T) {
	g := NewWithT(t)

	type payload struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com"}`))
	w := httptest.NewRecorder()
	result, err := JsonBody[payload](w, r)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Email).To(Equal("user@example.com"))

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	w = httptest.NewRecorder()
	_, err = JsonBody[payload](w, r)
	g.Expect(err).To(HaveOccurred())
	g.Expect(w.Code).To(Equal(400))
	g.Expect(w.Body.String()).To(ContainSubstring("Datos inválidos"))
}

func TestRespondError(t *testing.T) {
	g := NewWithT(t)

	w := httptest.NewRecorder()
	RespondError(w, 404, "No encontrado")
	g.Expect(w.Code).To(Equal(404))
	g.Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
	g.Expect(w.Body.String()).To(MatchJSON(`{"message":"No encontrado"}`))
}

func TestRespondJSON(t *testing.T) {
	g := NewWithT(t)

	w := httptest.NewRecorder()
	RespondJSON(w, map[string]bool{"success": true})
	g.Expect(w.Code).To(Equal(200))
	g.Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
	g.Expect(w.Body.String()).To(MatchJSON(`{"success":true}`))
}
