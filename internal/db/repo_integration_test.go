//go:build integration

package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wintario/sin-city-sentinels/internal/ordering"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	opt, err := pg.ParseURL(TestDBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse database URL: %v\n", err)
		os.Exit(1)
	}

	testDB = pg.Connect(opt)

	if err := testDB.Ping(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect to test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := ResetPublicSchema(ctx, testDB); err != nil {
		fmt.Fprintf(os.Stderr, "failed to reset schema: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := RunMigrations(ctx, TestDBURL); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := EnsureTablesExist(ctx, testDB, TestTables); err != nil {
		fmt.Fprintf(os.Stderr, "schema verification failed: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := LoadTestData(ctx, testDB); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load test data: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func TestRepository_PublishedNews_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	tests := []struct {
		name    string
		search  *NewsSearch
		wantIDs []int
	}{
		{
			name:    "WithoutSearchReturnsPublicNewsInDisplayOrder",
			wantIDs: []int{TestNewsClanMeetingID, TestNewsRecruitsID, TestNewsTournamentID},
		},
		{
			name:    "WithTitleQuery",
			search:  &NewsSearch{Query: ptr("tournament")},
			wantIDs: []int{TestNewsTournamentID},
		},
		{
			name:    "WithAuthorFilter",
			search:  &NewsSearch{AuthorID: ptr(TestBobID)},
			wantIDs: []int{TestNewsRecruitsID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news, err := repo.PublishedNews(ctx, tt.search)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, newsIDs(news))
			for _, n := range news {
				require.NotNil(t, n.Author, "author relation of news %d", n.ID)
				assert.Equal(t, n.AuthorID, n.Author.ID)
			}

			count, err := repo.PublishedNewsCount(ctx, tt.search)
			require.NoError(t, err)
			assert.Equal(t, len(tt.wantIDs), count)
		})
	}
}

func TestRepository_PublishedNews_Paging_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	search := &NewsSearch{}
	search.Limit = 2
	search.SetPage(2)

	news, err := repo.PublishedNews(ctx, search)
	require.NoError(t, err)
	assert.Equal(t, []int{TestNewsTournamentID}, newsIDs(news))
}

func TestRepository_AdminAndDeletedNews_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	admin, err := repo.AdminNews(ctx, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, newsIDs(admin))
	assert.Equal(t, TestNewsDraftID, admin[len(admin)-1].ID, "drafts sort last")

	deleted, err := repo.DeletedNews(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{TestNewsDeletedID}, newsIDs(deleted))
}

func TestRepository_NewsByID_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	news, err := repo.NewsByID(ctx, TestNewsDraftID, false)
	require.NoError(t, err)
	require.NotNil(t, news)
	assert.Nil(t, news.PublishedAt)
	require.NotNil(t, news.Author)
	assert.Equal(t, "alice", news.Author.Username)

	locked, err := repo.NewsByID(ctx, TestNewsDeletedID, true)
	require.NoError(t, err)
	require.NotNil(t, locked)
	assert.True(t, locked.IsDeleted)

	missing, err := repo.NewsByID(ctx, 9999, false)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_PublishedNewsBySlug_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	news, err := repo.PublishedNewsBySlug(ctx, "tournament-announcement-3")
	require.NoError(t, err)
	require.NotNil(t, news)
	assert.Equal(t, TestNewsTournamentID, news.ID)

	for _, slug := range []string{"draft-strategy-notes-4", "old-season-recap-5", "removed-post-6", "nope"} {
		news, err := repo.PublishedNewsBySlug(ctx, slug)
		require.NoError(t, err)
		assert.Nil(t, news, slug)
	}
}

func TestRepository_SlugExists_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	exists, err := repo.SlugExists(ctx, "removed-post-6")
	require.NoError(t, err)
	assert.True(t, exists, "deleted slugs are not reclaimed")

	exists, err = repo.SlugExists(ctx, "brand-new-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_NewsOrder_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	items, err := repo.NewsOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ordering.IDs(items))

	maxOrder, err := repo.MaxNewsOrder(ctx)
	require.NoError(t, err)
	require.NotNil(t, maxOrder)
	assert.Equal(t, 3, *maxOrder)

	require.NoError(t, repo.SetNewsOrders(ctx, []ordering.Item{{ID: 3, Order: 0}, {ID: 1, Order: 1}, {ID: 2, Order: 2}}))

	items, err = repo.NewsOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ordering.IDs(items))
}

func TestRepository_UpdateNews_OnlyGivenColumns_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	news, err := repo.NewsByID(ctx, TestNewsClanMeetingID, true)
	require.NoError(t, err)
	publishedAt := *news.PublishedAt

	news.Title = "Clan Meeting Results (updated)"
	news.PublishedAt = nil
	require.NoError(t, repo.UpdateNews(ctx, news, Columns.News.Title))

	reloaded, err := repo.NewsByID(ctx, TestNewsClanMeetingID, false)
	require.NoError(t, err)
	assert.Equal(t, "Clan Meeting Results (updated)", reloaded.Title)
	require.NotNil(t, reloaded.PublishedAt)
	assert.True(t, publishedAt.Equal(*reloaded.PublishedAt))
}

func TestRepository_Members_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	members, err := repo.Members(ctx, nil)
	require.NoError(t, err)
	require.Len(t, members, 5)
	for i, m := range members {
		assert.Equal(t, i, m.DisplayOrder)
	}

	reserve, err := repo.Members(ctx, &MemberSearch{Status: ptr(MemberStatusReserve)})
	require.NoError(t, err)
	require.Len(t, reserve, 1)
	assert.Equal(t, "Dwight", reserve[0].Name)

	active, err := repo.ActiveMembers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.True(t, active[0].IsLeader)
}

func TestRepository_MemberNameTaken_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	taken, err := repo.MemberNameTaken(ctx, "RAVEN", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.MemberNameTaken(ctx, "raven", TestMemberLeaderID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_SetMemberOrders_DeferredUnique_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	require.NoError(t, repo.SetMemberOrders(ctx, []ordering.Item{{ID: 1, Order: 1}, {ID: 2, Order: 0}}))

	items, err := repo.MemberOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3, 4, 5}, ordering.IDs(items))
}

func TestRepository_SetMembersField_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	n, err := repo.SetMembersField(ctx, []int{4, 5}, Columns.Member.Status, MemberStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = repo.SetMembersField(ctx, []int{4}, Columns.Member.Name, "x")
	assert.Error(t, err)
}

func TestRepository_Leader_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	require.NoError(t, repo.ClearLeader(ctx))
	require.NoError(t, repo.SetLeader(ctx, 2))

	ids, err := repo.LeaderIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)

	err = repo.SetLeader(ctx, 3)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err, MembersLeaderKey), "second leader must violate %s: %v", MembersLeaderKey, err)
}

func TestRepository_AboutCards_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	card := &AboutCard{Title: "Events", Description: "Weekly events", Style: "comic-halftone", DisplayOrder: 3, CreatedAt: BaseTime, UpdatedAt: BaseTime}
	require.NoError(t, repo.CreateAboutCard(ctx, card))
	require.NotZero(t, card.ID)

	require.NoError(t, repo.DeleteAboutCard(ctx, 1))
	order, err := repo.AboutCardOrder(ctx)
	require.NoError(t, err)
	require.Len(t, order, 3)

	_, changed := ordering.Normalize(order)
	require.NoError(t, repo.SetAboutCardOrders(ctx, changed))

	cards, err := repo.AboutCards(ctx)
	require.NoError(t, err)
	for i, c := range cards {
		assert.Equal(t, i, c.DisplayOrder)
	}
}

func TestRepository_Settings_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	settings, err := repo.Settings(ctx, "bg_color")
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "#1a1a1a", settings[0].Value)

	err = repo.UpsertSettings(ctx, []Setting{
		{Key: "bg_color", Value: "#000000", UpdatedAt: time.Now(), UpdatedBy: ptr(TestAdminID)},
	})
	require.NoError(t, err)

	settings, err = repo.Settings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 3)
	assert.Equal(t, "#000000", settings[0].Value)
}

func TestRepository_Users_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	user, err := repo.UserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, TestAliceID, user.ID)

	err = repo.CreateUser(ctx, &User{Username: "Alice", PasswordHash: "x", Role: "author", IsActive: true, CreatedAt: BaseTime})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err, UsersUsernameKey))
}

func TestRepository_RunInTransaction_ReusesTx_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	var inner *Repository
	err := repo.RunInTransaction(ctx, func(tx *Repository) error {
		inner = tx
		return tx.LockTable(ctx, Tables.Member.Name)
	})
	require.NoError(t, err)
	assert.Same(t, repo, inner)
}
