package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Supabase and Mongo repos, mimicking the
// remote contracts: absent single rows come back as (nil, nil), zero
// affected rows on update/delete is ErrNotFound, duplicate emails are
// ErrConflict.

type fakeUserRepo struct {
	mu                sync.Mutex
	nextID            int64
	passwords         map[string]string // email -> password
	identities        map[string]string // email -> auth id
	profiles          map[int64]*models.User
	failProfileCreate bool
	deletedIdentities []string
	resetRequests     []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		passwords:  map[string]string{},
		identities: map[string]string{},
		profiles:   map[int64]*models.User{},
	}
}

func (f *fakeUserRepo) SignUp(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.identities[email]; exists {
		return "", fmt.Errorf("signup: %w", models.ErrConflict)
	}
	authID := uuid.New().String()
	f.identities[email] = authID
	f.passwords[email] = password
	return authID, nil
}

func (f *fakeUserRepo) SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, exists := f.passwords[email]
	if !exists || stored != password {
		return nil, models.ErrInvalidCredentials
	}
	tok := &types.TokenResponse{}
	tok.AccessToken = "access-" + uuid.New().String()
	tok.RefreshToken = "refresh-" + uuid.New().String()
	tok.ExpiresIn = 3600
	tok.User.ID = uuid.MustParse(f.identities[email])
	return tok, nil
}

func (f *fakeUserRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, models.ErrInvalidCredentials
	}
	tok := &types.TokenResponse{}
	tok.AccessToken = "access-" + uuid.New().String()
	tok.RefreshToken = "refresh-" + uuid.New().String()
	tok.ExpiresIn = 3600
	return tok, nil
}

func (f *fakeUserRepo) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

func (f *fakeUserRepo) SendPasswordReset(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetRequests = append(f.resetRequests, email)
	return nil
}

func (f *fakeUserRepo) AdminCreateIdentity(ctx context.Context, email, password string) (string, error) {
	return f.SignUp(ctx, email, password)
}

func (f *fakeUserRepo) AdminDeleteIdentity(ctx context.Context, authID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIdentities = append(f.deletedIdentities, authID)
	return nil
}

func (f *fakeUserRepo) CreateProfile(ctx context.Context, insert *models.UserInsert) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProfileCreate {
		return nil, &models.PersistenceError{Op: "create user", Err: fmt.Errorf("connection reset")}
	}
	for _, u := range f.profiles {
		if u.Email == insert.Email {
			return nil, fmt.Errorf("create user: %w", models.ErrConflict)
		}
	}
	f.nextID++
	now := time.Now()
	user := &models.User{
		ID:        f.nextID,
		AuthID:    insert.AuthID,
		Name:      insert.Name,
		Email:     insert.Email,
		Phone:     insert.Phone,
		Role:      insert.Role,
		AvatarURL: insert.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.profiles[user.ID] = user
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, exists := f.profiles[id]
	if !exists {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByAuthID(ctx context.Context, authID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.profiles {
		if user.AuthID == authID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context, filter map[string]string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []*models.User{}
	for _, user := range f.profiles {
		if role, ok := filter["role"]; ok && string(user.Role) != role {
			continue
		}
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, exists := f.profiles[id]
	if !exists {
		return nil, fmt.Errorf("update user %d: %w", id, models.ErrNotFound)
	}
	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "email":
			user.Email = value.(string)
		case "phone":
			user.Phone = value.(string)
		case "avatar_url":
			user.AvatarURL = value.(string)
		case "role":
			user.Role = value.(models.Role)
		case "updated_at":
			user.UpdatedAt = value.(time.Time)
		}
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.profiles[id]; !exists {
		return fmt.Errorf("delete user %d: %w", id, models.ErrNotFound)
	}
	delete(f.profiles, id)
	return nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	nextID     int64
	properties map[int64]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: map[int64]*models.Property{}}
}

func (f *fakePropertyRepo) CreateProperty(ctx context.Context, insert *models.PropertyInsert) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now()
	property := &models.Property{
		ID:          f.nextID,
		Name:        insert.Name,
		Description: insert.Description,
		Address:     insert.Address,
		City:        insert.City,
		Postcode:    insert.Postcode,
		Country:     insert.Country,
		Bedrooms:    insert.Bedrooms,
		Bathrooms:   insert.Bathrooms,
		Size:        insert.Size,
		Rent:        insert.Rent,
		Price:       insert.Price,
		Status:      insert.Status,
		Type:        insert.Type,
		Featured:    insert.Featured,
		ImageURL:    insert.ImageURL,
		LandlordID:  insert.LandlordID,
		AgentID:     insert.AgentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.properties[property.ID] = property
	copied := *property
	return &copied, nil
}

func (f *fakePropertyRepo) GetPropertyByID(ctx context.Context, id int64) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	property, exists := f.properties[id]
	if !exists {
		return nil, nil
	}
	copied := *property
	return &copied, nil
}

func matchesProperty(p *models.Property, column, value string) bool {
	switch column {
	case "landlord_id":
		id, err := strconv.ParseInt(value, 10, 64)
		return err == nil && p.LandlordID != nil && *p.LandlordID == id
	case "agent_id":
		id, err := strconv.ParseInt(value, 10, 64)
		return err == nil && p.AgentID != nil && *p.AgentID == id
	case "status":
		return string(p.Status) == value
	case "type":
		return string(p.Type) == value
	case "city":
		return p.City == value
	case "featured":
		return strconv.FormatBool(p.Featured) == value
	}
	return false
}

func (f *fakePropertyRepo) ListProperties(ctx context.Context, filter map[string]string) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	properties := []*models.Property{}
	for _, property := range f.properties {
		matched := true
		for column, value := range filter {
			if !matchesProperty(property, column, value) {
				matched = false
				break
			}
		}
		if matched {
			copied := *property
			properties = append(properties, &copied)
		}
	}
	sort.Slice(properties, func(i, j int) bool { return properties[i].ID < properties[j].ID })
	return properties, nil
}

func (f *fakePropertyRepo) UpdateProperty(ctx context.Context, id int64, fields map[string]interface{}) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	property, exists := f.properties[id]
	if !exists {
		return nil, fmt.Errorf("update property %d: %w", id, models.ErrNotFound)
	}
	for key, value := range fields {
		switch key {
		case "name":
			property.Name = value.(string)
		case "description":
			property.Description = value.(string)
		case "bedrooms":
			property.Bedrooms = value.(int)
		case "bathrooms":
			property.Bathrooms = value.(int)
		case "featured":
			property.Featured = value.(bool)
		case "status":
			property.Status = models.PropertyStatus(value.(string))
		case "rent":
			v := value.(float64)
			property.Rent = &v
		case "price":
			v := value.(float64)
			property.Price = &v
		case "image_url":
			property.ImageURL = value.(string)
		case "updated_at":
			property.UpdatedAt = value.(time.Time)
		}
	}
	copied := *property
	return &copied, nil
}

func (f *fakePropertyRepo) DeleteProperty(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.properties[id]; !exists {
		return fmt.Errorf("delete property %d: %w", id, models.ErrNotFound)
	}
	delete(f.properties, id)
	return nil
}

type fakeBlogRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.BlogPost
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{posts: map[int64]*models.BlogPost{}}
}

func (f *fakeBlogRepo) CreatePost(ctx context.Context, insert *models.BlogPostInsert) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	post := &models.BlogPost{
		ID:        f.nextID,
		Title:     insert.Title,
		Content:   insert.Content,
		Summary:   insert.Summary,
		ImageURL:  insert.ImageURL,
		AuthorID:  insert.AuthorID,
		Published: insert.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.posts[post.ID] = post
	copied := *post
	return &copied, nil
}

func (f *fakeBlogRepo) GetPostByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, exists := f.posts[id]
	if !exists {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakeBlogRepo) ListPosts(ctx context.Context, filter map[string]string) ([]*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := []*models.BlogPost{}
	for _, post := range f.posts {
		if published, ok := filter["published"]; ok && strconv.FormatBool(post.Published) != published {
			continue
		}
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (f *fakeBlogRepo) UpdatePost(ctx context.Context, id int64, fields map[string]interface{}) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, exists := f.posts[id]
	if !exists {
		return nil, fmt.Errorf("update blog post %d: %w", id, models.ErrNotFound)
	}
	for key, value := range fields {
		switch key {
		case "title":
			post.Title = value.(string)
		case "content":
			post.Content = value.(string)
		case "summary":
			post.Summary = value.(string)
		case "image_url":
			post.ImageURL = value.(string)
		case "published":
			post.Published = value.(bool)
		case "updated_at":
			post.UpdatedAt = value.(time.Time)
		}
	}
	copied := *post
	return &copied, nil
}

func (f *fakeBlogRepo) DeletePost(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.posts[id]; !exists {
		return fmt.Errorf("delete blog post %d: %w", id, models.ErrNotFound)
	}
	delete(f.posts, id)
	return nil
}

type fakeContactRepo struct {
	mu       sync.Mutex
	messages map[primitive.ObjectID]*models.ContactMessage
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{messages: map[primitive.ObjectID]*models.ContactMessage{}}
}

func (f *fakeContactRepo) CreateMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := msg.BeforeCreate(); err != nil {
		return nil, err
	}
	copied := *msg
	f.messages[msg.ID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeContactRepo) ListMessages(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	messages := []*models.ContactMessage{}
	for _, msg := range f.messages {
		if unreadOnly && msg.Read {
			continue
		}
		copied := *msg
		messages = append(messages, &copied)
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}

func (f *fakeContactRepo) MarkMessageRead(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, exists := f.messages[id]
	if !exists {
		return fmt.Errorf("mark message read: %w", models.ErrNotFound)
	}
	msg.Read = true
	return nil
}

func (f *fakeContactRepo) DeleteMessage(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.messages[id]; !exists {
		return fmt.Errorf("delete message: %w", models.ErrNotFound)
	}
	delete(f.messages, id)
	return nil
}
