package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory repositories ---

type fakeUsers struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeUsers) add(name, email string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{ID: f.nextID, Name: name, Email: email, Role: models.RoleUser, Status: models.StatusActive}
	f.users[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == uid })
}

func (f *fakeUsers) GetUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.Bio = user.Bio
	existing.AvatarURL = user.AvatarURL
	existing.Location = user.Location
	existing.Password = user.Password
	existing.FirebaseUID = user.FirebaseUID
	existing.DeviceToken = user.DeviceToken
	return nil
}

func (f *fakeUsers) SetStatus(_ context.Context, id uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUsers) SetUserTitle(_ context.Context, id uint, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.UserTitle = &title
	return nil
}

// fakeFollows keeps edges and updates the counters on fakeUsers the way the
// transactional repository does.
type fakeFollows struct {
	mu    sync.Mutex
	users *fakeUsers
	edges map[[2]uint]bool
	// failAfterEdge simulates a counter write failing after the edge write;
	// the whole change is discarded as a rolled back transaction would be.
	failAfterEdge error
}

func newFakeFollows(users *fakeUsers) *fakeFollows {
	return &fakeFollows{users: users, edges: map[[2]uint]bool{}}
}

func (f *fakeFollows) write(follower, following uint, on bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uint{follower, following}
	if f.edges[key] == on {
		return false, nil
	}
	if f.failAfterEdge != nil {
		return false, f.failAfterEdge
	}
	delta := 1
	if on {
		f.edges[key] = true
	} else {
		delete(f.edges, key)
		delta = -1
	}
	f.users.mu.Lock()
	f.users.users[follower].FollowingCount += delta
	f.users.users[following].FollowersCount += delta
	f.users.mu.Unlock()
	return true, nil
}

func (f *fakeFollows) Follow(_ context.Context, follower, following uint) (bool, error) {
	return f.write(follower, following, true)
}

func (f *fakeFollows) Unfollow(_ context.Context, follower, following uint) (bool, error) {
	return f.write(follower, following, false)
}

func (f *fakeFollows) IsFollowing(_ context.Context, follower, following uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edges[[2]uint{follower, following}], nil
}

func (f *fakeFollows) collect(match func(edge [2]uint) (uint, bool)) []models.User {
	f.mu.Lock()
	var ids []uint
	for edge := range f.edges {
		if id, ok := match(edge); ok {
			ids = append(ids, id)
		}
	}
	f.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users, _ := f.users.GetUsersByIDs(context.Background(), ids)
	return users
}

func (f *fakeFollows) GetFollowers(_ context.Context, userID uint) ([]models.User, error) {
	return f.collect(func(e [2]uint) (uint, bool) { return e[0], e[1] == userID }), nil
}

func (f *fakeFollows) GetFollowing(_ context.Context, userID uint) ([]models.User, error) {
	return f.collect(func(e [2]uint) (uint, bool) { return e[1], e[0] == userID }), nil
}

func (f *fakeFollows) GetFollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	users := f.collect(func(e [2]uint) (uint, bool) { return e[1], e[0] == userID })
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	return ids, nil
}

type fakeRecipes struct {
	mu      sync.Mutex
	recipes map[string]*models.Recipe
}

func newFakeRecipes() *fakeRecipes {
	return &fakeRecipes{recipes: map[string]*models.Recipe{}}
}

func copyRecipe(r *models.Recipe) *models.Recipe {
	cp := *r
	cp.Likes = append([]uint{}, r.Likes...)
	cp.Comments = append([]models.Comment{}, r.Comments...)
	return &cp
}

// seed stores a recipe owned by owner with the given likes and creation time
func (f *fakeRecipes) seed(owner *models.User, name string, likes []uint, created time.Time) *models.Recipe {
	r := &models.Recipe{
		ID:          primitive.NewObjectID(),
		UserID:      owner.ID,
		DisplayName: owner.Name,
		RecipeName:  name,
		Category:    "Dinner",
		Likes:       likes,
		Comments:    []models.Comment{},
		CreatedAt:   created,
	}
	f.mu.Lock()
	f.recipes[r.ID.Hex()] = r
	f.mu.Unlock()
	return copyRecipe(r)
}

func (f *fakeRecipes) CreateRecipe(_ context.Context, recipe *models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recipe.ID = primitive.NewObjectID()
	recipe.CreatedAt = time.Now().UTC()
	if recipe.Likes == nil {
		recipe.Likes = []uint{}
	}
	f.recipes[recipe.ID.Hex()] = copyRecipe(recipe)
	return nil
}

func (f *fakeRecipes) GetRecipeByID(_ context.Context, id string) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyRecipe(r), nil
}

func (f *fakeRecipes) GetRecipesByIDs(_ context.Context, ids []string) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Recipe{}
	for _, id := range ids {
		if r, ok := f.recipes[id]; ok {
			out = append(out, *copyRecipe(r))
		}
	}
	return out, nil
}

func (f *fakeRecipes) filter(match func(*models.Recipe) bool) []models.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Recipe{}
	for _, r := range f.recipes {
		if match(r) {
			out = append(out, *copyRecipe(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRecipes) GetRecipesByUserID(_ context.Context, userID uint) ([]models.Recipe, error) {
	return f.filter(func(r *models.Recipe) bool { return r.UserID == userID }), nil
}

func (f *fakeRecipes) GetAllRecipes(_ context.Context) ([]models.Recipe, error) {
	return f.filter(func(*models.Recipe) bool { return true }), nil
}

func (f *fakeRecipes) GetLikedRecipeIDs(_ context.Context, userID uint) ([]string, error) {
	var ids []string
	for _, r := range f.filter(func(r *models.Recipe) bool { return r.LikedBy(userID) }) {
		ids = append(ids, r.ID.Hex())
	}
	return ids, nil
}

func (f *fakeRecipes) UpdateRecipe(_ context.Context, id string, recipe *models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[id]; !ok {
		return repositories.ErrNotFound
	}
	f.recipes[id] = copyRecipe(recipe)
	return nil
}

func (f *fakeRecipes) DeleteRecipe(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipes) ToggleLike(_ context.Context, id string, userID uint) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if r.LikedBy(userID) {
		kept := []uint{}
		for _, u := range r.Likes {
			if u != userID {
				kept = append(kept, u)
			}
		}
		r.Likes = kept
	} else {
		r.Likes = append(r.Likes, userID)
	}
	return copyRecipe(r), nil
}

func (f *fakeRecipes) AddComment(_ context.Context, id string, comment models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	r.Comments = append(r.Comments, comment)
	return nil
}

func (f *fakeRecipes) UpdateComment(_ context.Context, id, commentID, authorEmail, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c, ok := r.FindComment(commentID)
	if !ok || c.AuthorEmail != authorEmail {
		return repositories.ErrNotFound
	}
	c.Text = text
	return nil
}

func (f *fakeRecipes) DeleteComment(_ context.Context, id, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	kept := []models.Comment{}
	for _, c := range r.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(r.Comments) {
		return repositories.ErrNotFound
	}
	r.Comments = kept
	return nil
}

type fakeSaved struct {
	mu      sync.Mutex
	records map[uint]*models.SavedPosts
}

func newFakeSaved() *fakeSaved {
	return &fakeSaved{records: map[uint]*models.SavedPosts{}}
}

func (f *fakeSaved) ToggleSave(_ context.Context, userID uint, recipeID string) (*models.SavedPosts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[userID]
	if !ok {
		rec = &models.SavedPosts{UserID: userID, SavedPostIDs: []string{}}
		f.records[userID] = rec
	}
	if rec.Has(recipeID) {
		kept := []string{}
		for _, id := range rec.SavedPostIDs {
			if id != recipeID {
				kept = append(kept, id)
			}
		}
		rec.SavedPostIDs = kept
	} else {
		rec.SavedPostIDs = append(rec.SavedPostIDs, recipeID)
	}
	return &models.SavedPosts{UserID: userID, SavedPostIDs: append([]string{}, rec.SavedPostIDs...)}, nil
}

func (f *fakeSaved) GetSavedPosts(_ context.Context, userID uint) (*models.SavedPosts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[userID]
	if !ok {
		return &models.SavedPosts{UserID: userID, SavedPostIDs: []string{}}, nil
	}
	return &models.SavedPosts{UserID: userID, SavedPostIDs: append([]string{}, rec.SavedPostIDs...)}, nil
}

func (f *fakeSaved) RemoveEverywhere(_ context.Context, recipeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		kept := []string{}
		for _, id := range rec.SavedPostIDs {
			if id != recipeID {
				kept = append(kept, id)
			}
		}
		rec.SavedPostIDs = kept
	}
	return nil
}

type fakeNotifications struct {
	mu    sync.Mutex
	items []models.Notification
	err   error
}

func (f *fakeNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	n.ID = uint(len(f.items) + 1)
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) GetByRecipientID(_ context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var mine []models.Notification
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].RecipientID == recipientID {
			mine = append(mine, f.items[i])
		}
	}
	total := int64(len(mine))
	start := (page - 1) * limit
	if start >= len(mine) {
		return []models.Notification{}, total, nil
	}
	end := start + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[start:end], total, nil
}

func (f *fakeNotifications) GetGrouped(ctx context.Context, recipientID uint, now time.Time) (*models.GroupedNotifications, error) {
	items, _, _ := f.GetByRecipientID(ctx, recipientID, 1, 1000)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	g := &models.GroupedNotifications{}
	for _, n := range items {
		switch {
		case !n.CreatedAt.Before(today):
			g.Today = append(g.Today, n)
		case !n.CreatedAt.Before(today.AddDate(0, 0, -1)):
			g.Yesterday = append(g.Yesterday, n)
		case !n.CreatedAt.Before(today.AddDate(0, 0, -7)):
			g.ThisWeek = append(g.ThisWeek, n)
		default:
			g.Older = append(g.Older, n)
		}
	}
	g.FillEmpty()
	return g, nil
}

func (f *fakeNotifications) snapshot() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification{}, f.items...)
}

type fakeReports struct {
	mu      sync.Mutex
	reports []*models.Report
}

func (f *fakeReports) CreateReport(_ context.Context, r *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uint(len(f.reports) + 1)
	cp := *r
	f.reports = append(f.reports, &cp)
	return nil
}

func (f *fakeReports) GetReportByID(_ context.Context, id uint) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReports) ListReports(_ context.Context, reportType, status string) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Report{}
	for _, r := range f.reports {
		if (reportType == "" || r.Type == reportType) && (status == "" || r.Status == status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReports) finish(match func(*models.Report) bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reports {
		if r.Status == models.ReportPending && match(r) {
			r.Status = models.ReportFinished
			n++
		}
	}
	return n
}

func (f *fakeReports) FinishReportsForUser(_ context.Context, userID uint) (int64, error) {
	return f.finish(func(r *models.Report) bool { return r.Type == models.ReportAccount && r.ReportedUserID == userID }), nil
}

func (f *fakeReports) FinishReportsForRecipe(_ context.Context, recipeID string) (int64, error) {
	return f.finish(func(r *models.Report) bool { return r.Type == models.ReportPost && r.ReportedRecipeID == recipeID }), nil
}

type fakeVerifications struct {
	mu       sync.Mutex
	requests []*models.VerificationRequest
}

func (f *fakeVerifications) CreateRequest(_ context.Context, r *models.VerificationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uint(len(f.requests) + 1)
	cp := *r
	f.requests = append(f.requests, &cp)
	return nil
}

func (f *fakeVerifications) GetRequestByID(_ context.Context, id uint) (*models.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeVerifications) ListRequests(_ context.Context, status string) ([]models.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.VerificationRequest{}
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeVerifications) SetStatus(_ context.Context, id uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeChats struct {
	mu       sync.Mutex
	chats    map[string]*models.Chat
	messages []models.Message
}

func newFakeChats() *fakeChats {
	return &fakeChats{chats: map[string]*models.Chat{}}
}

func (f *fakeChats) FindOrCreateChat(_ context.Context, a, b uint) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b < a {
		a, b = b, a
	}
	for _, c := range f.chats {
		if c.Participants[0] == a && c.Participants[1] == b {
			cp := *c
			return &cp, nil
		}
	}
	c := &models.Chat{ID: primitive.NewObjectID(), Participants: []uint{a, b}, LastUpdated: time.Now()}
	f.chats[c.ID.Hex()] = c
	cp := *c
	return &cp, nil
}

func (f *fakeChats) GetChatByID(_ context.Context, id string) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChats) GetChatsByUserID(_ context.Context, userID uint) ([]models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Chat{}
	for _, c := range f.chats {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

func (f *fakeChats) AddMessage(_ context.Context, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().Add(time.Duration(len(f.messages)) * time.Millisecond)
	f.messages = append(f.messages, *msg)
	if c, ok := f.chats[msg.ChatID.Hex()]; ok {
		c.LastMessage = msg.Text
		c.LastMessageSender = msg.SenderID
		c.LastUpdated = msg.CreatedAt
	}
	return nil
}

func (f *fakeChats) GetMessages(_ context.Context, chatID string, limit int64) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var mine []models.Message
	for _, m := range f.messages {
		if m.ChatID.Hex() == chatID {
			mine = append(mine, m)
		}
	}
	if int64(len(mine)) > limit {
		mine = mine[int64(len(mine))-limit:]
	}
	return mine, nil
}

// --- other collaborators ---

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (f *fakeBlobs) Upload(_ context.Context, path string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	f.objects[path] = data
	f.mu.Unlock()
	return f.URL(path), nil
}

func (f *fakeBlobs) URL(path string) string {
	return "https://blobs.test/" + path
}

type sentPush struct {
	token, body string
	data        map[string]string
}

type fakePusher struct {
	mu   sync.Mutex
	sent []sentPush
}

func (f *fakePusher) Send(_ context.Context, token, _, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentPush{token: token, body: body, data: data})
	return nil
}

// env wires every service over the in-memory backends
type env struct {
	users         *fakeUsers
	follows       *fakeFollows
	recipes       *fakeRecipes
	saved         *fakeSaved
	notifications *fakeNotifications
	reports       *fakeReports
	verifications *fakeVerifications
	chats         *fakeChats
	blobs         *fakeBlobs
	pusher        *fakePusher
	hub           *live.Hub

	notifier   *Notifier
	feed       *FeedService
	engagement *EngagementService
	graph      *SocialGraphService
	comments   *CommentService
	recipeSvc  *RecipeService
	userSvc    *UserService
	moderation *ModerationService
	messaging  *MessagingService
}

func newEnv() *env {
	e := &env{
		users:         newFakeUsers(),
		recipes:       newFakeRecipes(),
		saved:         newFakeSaved(),
		notifications: &fakeNotifications{},
		reports:       &fakeReports{},
		verifications: &fakeVerifications{},
		chats:         newFakeChats(),
		blobs:         newFakeBlobs(),
		pusher:        &fakePusher{},
		hub:           live.NewHub(8),
	}
	e.follows = newFakeFollows(e.users)
	e.notifier = NewNotifier(e.users, e.notifications, e.hub, e.pusher, nil, nil)
	e.feed = NewFeedService(e.recipes, e.users, e.follows, e.saved, e.hub, nil, nil)
	e.engagement = NewEngagementService(e.recipes, e.saved, e.notifier, e.hub, nil)
	e.graph = NewSocialGraphService(e.users, e.follows, nil)
	e.comments = NewCommentService(e.recipes, e.users, e.notifier, e.hub)
	e.recipeSvc = NewRecipeService(e.recipes, e.users, e.saved, e.blobs, e.hub, nil)
	e.userSvc = NewUserService(e.users, e.recipes, e.graph, e.blobs)
	e.moderation = NewModerationService(e.users, e.reports, e.verifications, e.recipeSvc, e.blobs, nil)
	e.messaging = NewMessagingService(e.chats, e.users, e.hub)
	return e
}

func errBoom(what string) error {
	return fmt.Errorf("%s: boom", what)
}
