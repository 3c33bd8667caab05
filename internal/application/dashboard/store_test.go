package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/dashboard"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence"
	"github.com/wordpress-mobile/fluxc-go/internal/testutil"
)

type MockRestClient struct {
	mock.Mock
}

func (m *MockRestClient) FetchCards(ctx context.Context, site shared.Site) (*dashboard.Cards, error) {
	args := m.Called(ctx, site)
	cards, _ := args.Get(0).(*dashboard.Cards)
	return cards, args.Error(1)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, localSiteID int64, cards dashboard.Cards) error {
	return m.Called(ctx, localSiteID, cards).Error(0)
}

func (m *MockRepository) Find(ctx context.Context, localSiteID int64) (*dashboard.Cards, error) {
	args := m.Called(ctx, localSiteID)
	cards, _ := args.Get(0).(*dashboard.Cards)
	return cards, args.Error(1)
}

var testSite = shared.Site{LocalID: 9, SiteID: 1234, URL: "https://blog.example.com", IsWPCom: true}

// ---- Cards Store Tests ----

func TestStore_FetchCards(t *testing.T) {
	ctx := context.Background()

	t.Run("stores fetched cards", func(t *testing.T) {
		db := testutil.NewTestDatabase(t)
		client := &MockRestClient{}
		store := NewStore(client, persistence.NewGormDashboardCardRepository(db.DB), nil)
		date := time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC)
		client.On("FetchCards", mock.Anything, testSite).Return(&dashboard.Cards{Posts: &dashboard.PostsCard{
			HasPublished: true,
			Draft:        []dashboard.PostCard{{ID: 1, Title: "Draft", Date: date}},
		}}, nil).Once()

		require.NoError(t, store.FetchCards(ctx, testSite))

		cards, err := store.GetCards(ctx, testSite)
		require.NoError(t, err)
		require.NotNil(t, cards.Posts)
		assert.True(t, cards.Posts.HasPublished)
		require.Len(t, cards.Posts.Draft, 1)
		assert.True(t, date.Equal(cards.Posts.Draft[0].Date))
	})

	tests := []struct {
		name     string
		cards    *dashboard.Cards
		fetchErr error
		saveErr  error
		want     dashboard.ErrorType
		message  string
	}{
		{name: "network error", fetchErr: shared.NewNetworkError(shared.ErrorTimeout, "slow"), want: dashboard.ErrorTimeout, message: "slow"},
		{name: "missing payload", want: dashboard.ErrorInvalidResponse},
		{name: "storage failure", cards: &dashboard.Cards{}, saveErr: errors.New("disk full"), want: dashboard.ErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockRestClient{}
			repo := &MockRepository{}
			client.On("FetchCards", mock.Anything, testSite).Return(tt.cards, tt.fetchErr).Once()
			if tt.cards != nil {
				repo.On("Save", mock.Anything, testSite.LocalID, *tt.cards).Return(tt.saveErr).Once()
			}

			err := NewStore(client, repo, nil).FetchCards(ctx, testSite)

			var cardsErr *dashboard.CardsError
			require.ErrorAs(t, err, &cardsErr)
			assert.Equal(t, tt.want, cardsErr.Type)
			assert.Equal(t, tt.message, cardsErr.Message)
			repo.AssertExpectations(t)
		})
	}
}
