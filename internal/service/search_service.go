package service

import (
	"html"
	"log"
	"strings"

	"anoa.com/communityhub/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

type SearchService interface {
	IndexPost(post *model.Post) error
	IndexCommunityPost(post *model.CommunityPost) error
	DeletePost(id string) error
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index("posts").UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}
	if _, err := s.client.Index("community_posts").UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update community_posts sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliPostDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Slug      string `json:"slug"`
	Author    string `json:"author"`
	CreatedAt int64  `json:"created_at"`
}

type meiliCommunityDoc struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt int64  `json:"created_at"`
}

func (s *searchService) cleanContentForIndex(content string) string {
	// Replace block tags with spaces to prevent text merging
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexPost(post *model.Post) error {
	doc := meiliPostDoc{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   s.cleanContentForIndex(post.Content),
		Slug:      post.Slug,
		Author:    post.Author.Username,
		CreatedAt: post.CreatedAt.Unix(),
	}

	task, err := s.client.Index("posts").AddDocuments([]meiliPostDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed post %s, task id: %d", post.ID, task.TaskUID)
	return nil
}

func (s *searchService) IndexCommunityPost(post *model.CommunityPost) error {
	doc := meiliCommunityDoc{
		ID:        post.ID.String(),
		Content:   s.cleanContentForIndex(post.Content),
		Author:    post.Author.Username,
		CreatedAt: post.CreatedAt.Unix(),
	}

	task, err := s.client.Index("community_posts").AddDocuments([]meiliCommunityDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed community post %s, task id: %d", post.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeletePost(id string) error {
	_, err := s.client.Index("posts").DeleteDocument(id)
	return err
}

func strPtr(s string) *string {
	return &s
}
