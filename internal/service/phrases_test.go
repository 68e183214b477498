package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/frases/internal/database"
	"github.com/deppfellow/frases/internal/errs"
	"github.com/deppfellow/frases/internal/repository"
	"github.com/deppfellow/frases/internal/testutil"
)

func newServices(t *testing.T) (*Services, *database.Database) {
	t.Helper()

	db := testutil.NewDatabase(t)
	return NewServices(db, repository.NewRepositories(db.DB.DriverName())), db
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

func requireNotFound(t *testing.T, err error) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, MessagePhraseNotFound, httpErr.Message)
}

func TestPhraseInput_Values(t *testing.T) {
	tests := []struct {
		name string
		in   PhraseInput
		want repository.PhraseValues
	}{
		{
			name: "absent optionals are NULL",
			in:   PhraseInput{Texto: "Hello"},
			want: repository.PhraseValues{Texto: "Hello"},
		},
		{
			name: "empty and zero optionals are NULL",
			in:   PhraseInput{Texto: "Hello", MarcaTiempo: strPtr(""), Descripcion: strPtr(""), PersonajesID: int64Ptr(0)},
			want: repository.PhraseValues{Texto: "Hello"},
		},
		{
			name: "set optionals are kept",
			in:   PhraseInput{Texto: "Hello", MarcaTiempo: strPtr("00:10"), Descripcion: strPtr("d"), PersonajesID: int64Ptr(3)},
			want: repository.PhraseValues{Texto: "Hello", MarcaTiempo: strPtr("00:10"), Descripcion: strPtr("d"), PersonajesID: int64Ptr(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Values())
		})
	}
}

func TestPhraseService_CreateGet(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()
	homer := testutil.SeedCharacter(t, db, "Homer")

	id, err := services.Phrases.Create(ctx, PhraseInput{
		Texto:        "D'oh!",
		MarcaTiempo:  strPtr("00:01:23"),
		PersonajesID: int64Ptr(homer),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := services.Phrases.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &repository.Phrase{
		ID:              id,
		Texto:           "D'oh!",
		MarcaTiempo:     strPtr("00:01:23"),
		PersonajeNombre: strPtr("Homer"),
	}, got)

	all, err := services.Phrases.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPhraseService_Get_Missing(t *testing.T) {
	services, _ := newServices(t)

	_, err := services.Phrases.Get(context.Background(), 99999)
	requireNotFound(t, err)
}

func TestPhraseService_Create_UnknownCharacter(t *testing.T) {
	services, db := newServices(t)

	_, err := services.Phrases.Create(context.Background(), PhraseInput{Texto: "orphan", PersonajesID: int64Ptr(404)})
	require.Error(t, err)

	// Constraint failures are raw store errors; the handler turns them into a 500.
	var httpErr *errs.HTTPError
	assert.NotErrorAs(t, err, &httpErr)
	assert.Equal(t, 0, testutil.CountPhrases(t, db))
}

func TestPhraseService_Update(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()
	id := testutil.SeedPhrase(t, db, "before", 0, 0)

	require.NoError(t, services.Phrases.Update(ctx, id, PhraseInput{Texto: "after", Descripcion: strPtr("edited")}))

	got, err := services.Phrases.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Texto)
	assert.Equal(t, strPtr("edited"), got.Descripcion)
}

func TestPhraseService_Update_Missing(t *testing.T) {
	services, db := newServices(t)
	testutil.SeedPhrase(t, db, "untouched", 0, 0)

	err := services.Phrases.Update(context.Background(), 99999, PhraseInput{Texto: "x"})
	requireNotFound(t, err)

	all, err := services.Phrases.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "untouched", all[0].Texto)
}

func TestPhraseService_Delete(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()
	id := testutil.SeedPhrase(t, db, "bye", 0, 0)

	require.NoError(t, services.Phrases.Delete(ctx, id))
	assert.Equal(t, 0, testutil.CountPhrases(t, db))

	_, err := services.Phrases.Get(ctx, id)
	requireNotFound(t, err)

	requireNotFound(t, services.Phrases.Delete(ctx, id))
}

func TestPhraseService_Filters(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()

	homer := testutil.SeedCharacter(t, db, "Homer")
	bart := testutil.SeedCharacter(t, db, "Bart")
	pilot := testutil.SeedChapter(t, db, "Pilot", 1)

	testutil.SeedPhrase(t, db, "D'oh!", homer, pilot)
	testutil.SeedPhrase(t, db, "Mmm... donuts", homer, 0)
	testutil.SeedPhrase(t, db, "Ay caramba", bart, pilot)

	byHomer, err := services.Phrases.ListByCharacter(ctx, homer)
	require.NoError(t, err)
	assert.Len(t, byHomer, 2)

	byPilot, err := services.Phrases.ListByChapter(ctx, pilot)
	require.NoError(t, err)
	assert.Len(t, byPilot, 2)

	none, err := services.Phrases.ListByCharacter(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCatalogService(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()

	testutil.SeedCharacter(t, db, "Lisa")
	testutil.SeedChapter(t, db, "Pilot", 1)

	characters, err := services.Catalog.Characters(ctx)
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Equal(t, "Lisa", characters[0]["nombre"])

	chapters, err := services.Catalog.Chapters(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "Pilot", chapters[0]["titulo"])
}

func TestPhraseService_StoreUnavailable(t *testing.T) {
	services, db := newServices(t)
	require.NoError(t, db.DB.Close())

	_, err := services.Phrases.List(context.Background())

	var connErr *database.ConnectionError
	assert.ErrorAs(t, err, &connErr)
}
