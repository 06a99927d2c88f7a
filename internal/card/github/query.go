package github

const profileQuery = `query($login: String!, $repos: Int!, $langs: Int!) {
  user(login: $login) {
    name
    login
    createdAt
    repositories(first: $repos, ownerAffiliations: OWNER, privacy: PUBLIC) {
      totalCount
      nodes {
        stargazerCount
        languages(first: $langs, orderBy: {field: SIZE, direction: DESC}) {
          edges {
            size
            node {
              name
              color
            }
          }
        }
      }
    }
    followers { totalCount }
    following { totalCount }
    pullRequests { totalCount }
    issues { totalCount }
    gists { totalCount }
    contributionsCollection {
      totalCommitContributions
      restrictedContributionsCount
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Type    string   `json:"type"`
	Path    []any    `json:"path"`
	Message string   `json:"message"`
}

type profileResponse struct {
	Data struct {
		User *userNode `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type countNode struct {
	TotalCount int `json:"totalCount"`
}

type userNode struct {
	Name         string `json:"name"`
	Login        string `json:"login"`
	CreatedAt    string `json:"createdAt"`
	Repositories struct {
		TotalCount int        `json:"totalCount"`
		Nodes      []repoNode `json:"nodes"`
	} `json:"repositories"`
	Followers               countNode `json:"followers"`
	Following               countNode `json:"following"`
	PullRequests            countNode `json:"pullRequests"`
	Issues                  countNode `json:"issues"`
	Gists                   countNode `json:"gists"`
	ContributionsCollection struct {
		TotalCommitContributions     int `json:"totalCommitContributions"`
		RestrictedContributionsCount int `json:"restrictedContributionsCount"`
	} `json:"contributionsCollection"`
}

type repoNode struct {
	StargazerCount int `json:"stargazerCount"`
	Languages      struct {
		Edges []struct {
			Size int64 `json:"size"`
			Node struct {
				Name  string  `json:"name"`
				Color *string `json:"color"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"languages"`
}
