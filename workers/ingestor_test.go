package workers

import (
	"path/filepath"
	"testing"

	"lumen/db"
	"lumen/models"
	"lumen/tools"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to open test database")
	db.AutoMigrate(database)

	t.Cleanup(func() {
		assert.NoError(t, database.Close())
	})
	return database
}

func countContents(t *testing.T, database *gorm.DB) int {
	t.Helper()
	var count int
	require.NoError(t, database.Model(&models.Content{}).Count(&count).Error)
	return count
}

func TestStoreSearchResultsIdempotent(t *testing.T) {
	database := setupTestDB(t)

	results := []tools.SearchResult{
		{ID: "1", URL: "http://x.com", Title: "T", Content: "B"},
	}

	StoreSearchResults(database, results, 1)
	require.Equal(t, 1, countContents(t, database))

	var content models.Content
	require.NoError(t, database.First(&content).Error)
	assert.Equal(t, models.CONTENT_SOURCE_EXA_SEARCH, content.SourceType)
	assert.Equal(t, models.ContentHashOf("http://x.com", "T", "B"), content.ContentHash)
	assert.Equal(t, int64(1), content.UserID)
	assert.Equal(t, models.CONTENT_VISIBILITY_PRIVATE, content.Visibility)
	assert.NotEmpty(t, content.ID)
	assert.NotEmpty(t, content.RawData)

	// Segundo ingest do mesmo resultado: nenhuma linha nova, nenhum update.
	StoreSearchResults(database, results, 1)
	assert.Equal(t, 1, countContents(t, database))

	// Nem mesmo quando outro usuário busca o mesmo conteúdo.
	StoreSearchResults(database, results, 2)
	assert.Equal(t, 1, countContents(t, database))

	require.NoError(t, database.First(&content).Error)
	assert.Equal(t, int64(1), content.UserID, "o dono original não muda")
}

func TestStoreSearchResultsDuplicateInBatch(t *testing.T) {
	database := setupTestDB(t)

	// Duas entradas com o mesmo fingerprint no mesmo lote: a segunda é
	// tratada como o mesmo conteúdo, mesmo com campos menores diferentes.
	results := []tools.SearchResult{
		{ID: "1", URL: "http://x.com", Title: "T", Content: "B", Image: "http://x.com/a.png"},
		{ID: "2", URL: "http://x.com", Title: "T", Content: "B", Image: "http://x.com/b.png"},
		{ID: "3", URL: "http://y.com", Title: "Outro", Content: "C"},
	}

	StoreSearchResults(database, results, 7)
	assert.Equal(t, 2, countContents(t, database))
}

func TestStoreSearchResultsSkipsExistingHash(t *testing.T) {
	database := setupTestDB(t)

	// O primeiro item bate em um hash já existente (inserido por outro
	// caminho); os demais ainda precisam ser gravados.
	hash := models.ContentHashOf("http://x.com", "T", "B")
	require.NoError(t, database.Create(&models.Content{
		ID:          "pre-existing",
		SourceType:  models.CONTENT_SOURCE_EXA_SEARCH,
		ContentHash: hash,
	}).Error)

	results := []tools.SearchResult{
		{ID: "1", URL: "http://x.com", Title: "T", Content: "B"},
		{ID: "2", URL: "http://y.com", Title: "Y", Content: "C"},
		{ID: "3", URL: "http://z.com", Title: "Z", Content: "D"},
	}

	StoreSearchResults(database, results, 1)
	assert.Equal(t, 3, countContents(t, database))
}

func TestStoreSearchResultsMissingFields(t *testing.T) {
	database := setupTestDB(t)

	// Resultado sem url/title/body ainda gera hash determinístico.
	results := []tools.SearchResult{{ID: "1"}}

	StoreSearchResults(database, results, 1)
	StoreSearchResults(database, results, 1)
	assert.Equal(t, 1, countContents(t, database))

	var content models.Content
	require.NoError(t, database.First(&content).Error)
	assert.Equal(t, models.ContentHashOf("", "", ""), content.ContentHash)
}

func TestEnqueueIngestWithoutWorker(t *testing.T) {
	database := setupTestDB(t)

	// Sem worker ativo o lote roda em goroutine avulsa; nada deve travar.
	EnqueueIngest(nil, []tools.SearchResult{{URL: "http://x.com"}}, 1)
	EnqueueIngest(database, nil, 1)
}
