package review

import (
	"context"
	"fmt"
	"net/http"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

type RepoRef struct {
	Owner string
	Name  string
}

func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL resolves any of the usual repository URL spellings (https,
// ssh, short form) into an owner/name pair.
func ParseRepoURL(raw string) (RepoRef, error) {
	info, err := vcsurl.Parse(raw)
	if err != nil {
		return RepoRef{}, fmt.Errorf("parse repository url %q: %w", raw, err)
	}
	if info.Username == "" || info.Name == "" {
		return RepoRef{}, fmt.Errorf("repository url %q has no owner/name", raw)
	}
	return RepoRef{Owner: info.Username, Name: info.Name}, nil
}

// PullRequestService is the slice of the code host API the review pipeline
// needs. GitHubFetcher is the production implementation.
type PullRequestService interface {
	FetchPR(ctx context.Context, number int) (PRMetadata, error)
	FetchChangedFiles(ctx context.Context, number int) ([]ChangedFile, error)
	PostComment(ctx context.Context, number int, body string) (string, error)
	FullName() string
}

type GitHubFetcher struct {
	client *github.Client
	owner  string
	repo   string
}

func NewGitHubFetcher(client *github.Client, ref RepoRef) *GitHubFetcher {
	return &GitHubFetcher{client: client, owner: ref.Owner, repo: ref.Name}
}

func (f *GitHubFetcher) FullName() string {
	return f.owner + "/" + f.repo
}

func (f *GitHubFetcher) FetchPR(ctx context.Context, number int) (PRMetadata, error) {
	pr, _, err := f.client.PullRequests.Get(ctx, f.owner, f.repo, number)
	if err != nil {
		return PRMetadata{}, fmt.Errorf("get pull request #%d: %w", number, err)
	}
	return PRMetadata{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		Author:    pr.GetUser().GetLogin(),
		BaseRef:   pr.GetBase().GetRef(),
		HeadSHA:   pr.GetHead().GetSHA(),
		URL:       pr.GetHTMLURL(),
		CreatedAt: pr.GetCreatedAt().Time,
	}, nil
}

func (f *GitHubFetcher) FetchChangedFiles(ctx context.Context, number int) ([]ChangedFile, error) {
	var files []ChangedFile
	opts := &github.ListOptions{PerPage: 100}
	for {
		batch, resp, err := f.client.PullRequests.ListFiles(ctx, f.owner, f.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list files for pull request #%d: %w", number, err)
		}
		for _, cf := range batch {
			files = append(files, ChangedFile{
				Filename:         cf.GetFilename(),
				PreviousFilename: cf.GetPreviousFilename(),
				Status:           cf.GetStatus(),
				Additions:        cf.GetAdditions(),
				Deletions:        cf.GetDeletions(),
				Patch:            cf.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return files, nil
}

func (f *GitHubFetcher) PostComment(ctx context.Context, number int, body string) (string, error) {
	comment, _, err := f.client.Issues.CreateComment(ctx, f.owner, f.repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return "", fmt.Errorf("post comment on pull request #%d: %w", number, err)
	}
	return comment.GetHTMLURL(), nil
}
