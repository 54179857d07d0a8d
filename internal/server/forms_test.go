package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"pawhaven/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePetForm(t *testing.T) {
	s := newTestService(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "  Buddy "))
	require.NoError(t, mw.WriteField("type", "dog"))
	require.NoError(t, mw.WriteField("breed", "Golden Retriever"))
	require.NoError(t, mw.WriteField("arrival_date", "2025-03-10"))
	require.NoError(t, mw.WriteField("adoption_fee_cents", "9500"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/dashboard/pets/new", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	form, ok := s.decodePetForm(w, r)
	require.True(t, ok)
	assert.Equal(t, "Buddy", form.Name)
	assert.Equal(t, types.PetTypeDog, form.Type)
	assert.Equal(t, 9500, form.AdoptionFeeCents)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), form.ArrivalDate)
}

func TestFormDecoderDates(t *testing.T) {
	t.Run("date input format", func(t *testing.T) {
		var form types.UpdatePet
		require.NoError(t, decoder.Decode(&form, url.Values{"arrival_date": {"2025-03-10"}}))
		assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), form.ArrivalDate)
	})

	t.Run("rfc3339 still accepted", func(t *testing.T) {
		var form types.UpdatePet
		require.NoError(t, decoder.Decode(&form, url.Values{"arrival_date": {"2025-03-10T12:30:00Z"}}))
		assert.Equal(t, time.Date(2025, time.March, 10, 12, 30, 0, 0, time.UTC), form.ArrivalDate)
	})

	t.Run("empty value decodes to zero time", func(t *testing.T) {
		var form types.UpdatePet
		require.NoError(t, decoder.Decode(&form, url.Values{"arrival_date": {""}}))
		assert.True(t, form.ArrivalDate.IsZero())
	})

	t.Run("garbage errors", func(t *testing.T) {
		var form types.UpdatePet
		assert.Error(t, decoder.Decode(&form, url.Values{"arrival_date": {"next tuesday"}}))
	})
}
