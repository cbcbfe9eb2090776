package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createContact(t *testing.T, s *Server, token, name string) string {
	t.Helper()

	rec, resp := do(t, s, http.MethodPost, "/api/contacts", token, map[string]string{
		"name":         name,
		"relationship": "friend",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	contact := resp["contact"].(map[string]interface{})
	id, _ := contact["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestContacts_CreateListDelete(t *testing.T) {
	s, _ := newTestServer(t)
	token := signup(t, s, "Ann Lee", "ann@example.com")

	id := createContact(t, s, token, "Bo")

	rec, resp := do(t, s, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	contacts := resp["contacts"].([]interface{})
	require.Len(t, contacts, 1)
	assert.Equal(t, "Bo", contacts[0].(map[string]interface{})["name"])

	rec, resp = do(t, s, http.MethodDelete, "/api/contacts/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])

	rec, resp = do(t, s, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp["contacts"])
}

func TestContacts_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	token := signup(t, s, "Ann Lee", "ann@example.com")

	rec, resp := do(t, s, http.MethodPost, "/api/contacts", token, map[string]string{
		"email": "not-an-email",
		"phone": "abc",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	fields := map[string]bool{}
	for _, e := range resp["errors"].([]interface{}) {
		fields[e.(map[string]interface{})["field"].(string)] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["phone"])
}

func TestContacts_CrossUserIsolation(t *testing.T) {
	s, _ := newTestServer(t)
	ann := signup(t, s, "Ann Lee", "ann@example.com")
	bo := signup(t, s, "Bo Kim", "bo@example.com")

	id := createContact(t, s, ann, "Grandma")

	// Bo sees nothing and cannot delete Ann's contact
	rec, resp := do(t, s, http.MethodGet, "/api/contacts", bo, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp["contacts"])

	rec, resp = do(t, s, http.MethodDelete, "/api/contacts/"+id, bo, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact not found", resp["message"])

	// Ann's contact is intact
	rec, resp = do(t, s, http.MethodGet, "/api/contacts", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["contacts"], 1)
}

func TestSpecialDates_Flow(t *testing.T) {
	s, _ := newTestServer(t)
	token := signup(t, s, "Ann Lee", "ann@example.com")
	contactID := createContact(t, s, token, "Bo")

	rec, resp := do(t, s, http.MethodPost, "/api/contacts/"+contactID+"/special-dates", token, map[string]string{
		"dateName":  "Birthday",
		"dateValue": "1990-04-01",
		"notes":     "Loves chocolate",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	date := resp["specialDate"].(map[string]interface{})
	dateID := date["id"].(string)
	assert.Equal(t, contactID, date["contactId"])

	rec, resp = do(t, s, http.MethodGet, "/api/contacts/"+contactID+"/special-dates", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp["specialDates"], 1)

	rec, resp = do(t, s, http.MethodDelete, "/api/special-dates/"+dateID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])

	rec, resp = do(t, s, http.MethodDelete, "/api/special-dates/"+dateID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Special date not found", resp["message"])
}

func TestSpecialDates_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	token := signup(t, s, "Ann Lee", "ann@example.com")
	contactID := createContact(t, s, token, "Bo")

	rec, resp := do(t, s, http.MethodPost, "/api/contacts/"+contactID+"/special-dates", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	fields := map[string]bool{}
	for _, e := range resp["errors"].([]interface{}) {
		fields[e.(map[string]interface{})["field"].(string)] = true
	}
	assert.True(t, fields["dateName"])
	assert.True(t, fields["dateValue"])
}

func TestSpecialDates_ContactNotOwned(t *testing.T) {
	s, _ := newTestServer(t)
	ann := signup(t, s, "Ann Lee", "ann@example.com")
	bo := signup(t, s, "Bo Kim", "bo@example.com")
	contactID := createContact(t, s, ann, "Grandma")

	rec, resp := do(t, s, http.MethodPost, "/api/contacts/"+contactID+"/special-dates", bo, map[string]string{
		"dateName":  "Birthday",
		"dateValue": "1990-04-01",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact not found", resp["message"])

	rec, resp = do(t, s, http.MethodGet, "/api/contacts/"+contactID+"/special-dates", bo, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact not found", resp["message"])
}

func TestDeleteContact_CascadesSpecialDates(t *testing.T) {
	s, _ := newTestServer(t)
	token := signup(t, s, "Ann Lee", "ann@example.com")
	contactID := createContact(t, s, token, "Bo")

	_, resp := do(t, s, http.MethodPost, "/api/contacts/"+contactID+"/special-dates", token, map[string]string{
		"dateName":  "Anniversary",
		"dateValue": "2020-06-15",
	})
	dateID := resp["specialDate"].(map[string]interface{})["id"].(string)

	rec, _ := do(t, s, http.MethodDelete, "/api/contacts/"+contactID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The date went with the contact
	rec, resp = do(t, s, http.MethodDelete, "/api/special-dates/"+dateID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Special date not found", resp["message"])
}
