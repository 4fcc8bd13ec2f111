package encyclopedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"mise/ai"
	"mise/db"
	"mise/models"
	"mise/rdx"
	"mise/utils"
)

// GetCategories returns the fixed encyclopedia tabs.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "categories": categories})
}

// GetTopics returns the topic hierarchy of one category.
func GetTopics(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := strings.ToUpper(ps.ByName("category"))
	topics, ok := topicsByCategory[category]
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown category")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "topics": topics})
}

const articleTTL = 24 * time.Hour

// GetArticle serves the markdown article for a topic: redis, then mongo,
// then model generation persisted back so the next reader hits the cache.
func GetArticle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	topicID := ps.ByName("topicID")
	topic, ok := findTopic(topicID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown topic")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	redisKey := "article:" + topicID
	if val, err := rdx.Conn.Get(ctx, redisKey).Result(); err == nil && val != "" {
		var article models.Article
		if err := json.Unmarshal([]byte(val), &article); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "article": article})
			return
		}
	}

	var article models.Article
	if err := db.ArticlesCollection.FindOne(ctx, bson.M{"topicId": topicID}).Decode(&article); err == nil {
		cacheArticle(ctx, redisKey, article)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "article": article})
		return
	}

	article, err := generateArticle(ctx, topic)
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Article is not available yet")
		return
	}
	if _, err := db.ArticlesCollection.InsertOne(ctx, article); err == nil {
		cacheArticle(ctx, redisKey, article)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "article": article})
}

func cacheArticle(ctx context.Context, key string, article models.Article) {
	if jsonBytes, err := json.Marshal(article); err == nil {
		_ = rdx.Conn.Set(ctx, key, jsonBytes, articleTTL).Err()
	}
}

const articleSystemPrompt = "You are a culinary historian writing encyclopedia entries for professional chefs. Write in markdown with headings, around 600 words, accurate and sourced where possible."

func generateArticle(ctx context.Context, topic Topic) (models.Article, error) {
	client, err := ai.Default()
	if err != nil {
		return models.Article{}, err
	}

	prompt := fmt.Sprintf("Write the encyclopedia article for %q in the %s category.", topic.Title, topic.Category)
	if topic.ParentGroup != "" {
		prompt = fmt.Sprintf("Write the encyclopedia article for the %s technique %q.", topic.ParentGroup, topic.Title)
	}

	content, err := client.Complete(ctx, articleSystemPrompt, prompt)
	if err != nil {
		return models.Article{}, err
	}

	return models.Article{
		TopicID:     topic.ID,
		Title:       topic.Title,
		Category:    topic.Category,
		Content:     content,
		ReadingTime: readingTime(content),
		Author:      "Studio Archive",
		UpdatedAt:   time.Now(),
	}, nil
}

// readingTime estimates minutes at ~200 words per minute.
func readingTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}
