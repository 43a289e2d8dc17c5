package dashboard

import (
	"context"
	"fmt"

	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/pkg/account"
	"github.com/klokku/creatordash/pkg/activity"
	"github.com/klokku/creatordash/pkg/automation"
	"github.com/klokku/creatordash/pkg/background"
	"github.com/klokku/creatordash/pkg/link"
	"github.com/klokku/creatordash/pkg/media"
	"github.com/klokku/creatordash/pkg/video"
)

type VideoLister interface {
	ListVideos(ctx context.Context) ([]video.Video, error)
}

type BackgroundLister interface {
	ListBackgrounds(ctx context.Context) ([]background.Background, error)
}

type AccountLister interface {
	ListAccounts(ctx context.Context) ([]account.Account, error)
}

type LinkLister interface {
	ListLinks(ctx context.Context) ([]link.Link, error)
}

type AutomationState interface {
	State(ctx context.Context) (automation.State, error)
}

type ActivityFeed interface {
	Recent(ctx context.Context) ([]activity.Activity, error)
}

type Service struct {
	videos       VideoLister
	backgrounds  BackgroundLister
	accounts     AccountLister
	links        LinkLister
	automation   AutomationState
	activity     ActivityFeed
	clock        utils.Clock
	storageQuota int64
}

func NewService(
	videos VideoLister,
	backgrounds BackgroundLister,
	accounts AccountLister,
	links LinkLister,
	automation AutomationState,
	activity ActivityFeed,
	clock utils.Clock,
	storageQuotaBytes int64,
) *Service {
	return &Service{
		videos:       videos,
		backgrounds:  backgrounds,
		accounts:     accounts,
		links:        links,
		automation:   automation,
		activity:     activity,
		clock:        clock,
		storageQuota: storageQuotaBytes,
	}
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	videos, err := s.videos.ListVideos(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to list videos: %w", err)
	}
	backgrounds, err := s.backgrounds.ListBackgrounds(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to list backgrounds: %w", err)
	}
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to list accounts: %w", err)
	}
	links, err := s.links.ListLinks(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to list links: %w", err)
	}
	automationState, err := s.automation.State(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get automation state: %w", err)
	}
	activities, err := s.activity.Recent(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get recent activity: %w", err)
	}

	var used int64
	for _, v := range videos {
		used += media.ParseSize(v.Size)
	}
	for _, b := range backgrounds {
		used += media.ParseSize(b.Size)
	}
	active := 0
	for _, a := range accounts {
		if a.Status == account.Active {
			active++
		}
	}

	now := s.clock.Now()
	recent := make([]RecentActivity, 0, len(activities))
	for _, a := range activities {
		recent = append(recent, RecentActivity{
			Action: a.Action,
			Type:   string(a.Type),
			Icon:   a.Type.Icon(),
			Time:   activity.RelativeTime(a.At, now),
		})
	}

	return Overview{
		Stats: []StatCard{
			{Title: "Total Videos", Value: len(videos), Icon: "video", Color: "from-blue-500 to-cyan-500"},
			{Title: "Backgrounds", Value: len(backgrounds), Icon: "image", Color: "from-purple-500 to-pink-500"},
			{Title: "Accounts", Value: len(accounts), Icon: "users", Color: "from-green-500 to-emerald-500"},
			{Title: "Links", Value: len(links), Icon: "link", Color: "from-orange-500 to-red-500"},
		},
		QuickStats: []QuickStat{
			{Label: "Storage Used", Percent: percent(used, s.storageQuota)},
			{Label: "Automation Progress", Percent: automationState.Progress},
			{Label: "Active Accounts", Percent: percent(int64(active), int64(len(accounts)))},
		},
		RecentActivity: recent,
	}, nil
}

// percent is part/total rounded down and capped at 100; an empty total is 0%.
func percent(part, total int64) int {
	if total <= 0 {
		return 0
	}
	p := part * 100 / total
	if p > 100 {
		return 100
	}
	return int(p)
}
