package workers

import (
	"encoding/json"
	"time"

	"lumen/models"
	"lumen/tools"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

type ingestJob struct {
	results []tools.SearchResult
	userID  int64
}

var ingestJobs chan ingestJob

// StartContentIngestor starts the background loop that persists search results.
func StartContentIngestor(db *gorm.DB) {
	jobs := make(chan ingestJob, 64)
	ingestJobs = jobs

	go func() {
		for job := range jobs {
			StoreSearchResults(db, job.results, job.userID)
		}
	}()
}

// EnqueueIngest agenda a persistência de um lote de resultados. Nunca bloqueia
// o caminho da resposta: com a fila cheia (ou worker parado) o lote roda em
// uma goroutine avulsa.
func EnqueueIngest(db *gorm.DB, results []tools.SearchResult, userID int64) {
	if len(results) == 0 || db == nil {
		return
	}

	if jobs := ingestJobs; jobs != nil {
		select {
		case jobs <- ingestJob{results: results, userID: userID}:
			return
		default:
		}
	}

	go StoreSearchResults(db, results, userID)
}

// StoreSearchResults grava cada resultado uma única vez, chaveado pelo
// fingerprint (url|title|body). Falha em um item não interrompe os demais.
func StoreSearchResults(db *gorm.DB, results []tools.SearchResult, userID int64) {
	created := 0
	for _, result := range results {
		hash := models.ContentHashOf(result.URL, result.Title, result.Content)

		var existing models.Content
		err := db.Select("id").Where("content_hash = ?", hash).First(&existing).Error
		if err == nil {
			// já conhecido: dedup, sem update e sem duplicata
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			logrus.Warnf("ingestor: lookup hash for %s: %v", result.URL, err)
			continue
		}

		content := models.Content{
			SourceType:  models.CONTENT_SOURCE_EXA_SEARCH,
			ContentHash: hash,
			UserID:      userID,
			Visibility:  models.CONTENT_VISIBILITY_PRIVATE,
			URL:         result.URL,
			Title:       result.Title,
			Author:      result.Author,
			Body:        result.Content,
			Thumbnail:   result.Image,
			Favicon:     result.Favicon,
			PublishedAt: publishedAtOf(result),
		}
		if raw, err := json.Marshal(result); err == nil {
			content.RawData = string(raw)
		}

		if err := db.Create(&content).Error; err != nil {
			// corrida com outro ingest do mesmo hash cai aqui pela unique
			logrus.Warnf("ingestor: store result for %s: %v", result.URL, err)
			continue
		}
		created++
	}

	if created > 0 {
		logrus.Infof("ingestor: %d/%d resultados novos para user %d", created, len(results), userID)
	}
}

func publishedAtOf(result tools.SearchResult) *time.Time {
	if result.PublishedDate <= 0 {
		return nil
	}
	t := time.UnixMilli(result.PublishedDate)
	return &t
}
