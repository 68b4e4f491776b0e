package github

const pullRequestFields = `
fragment pullRequestFields on PullRequest {
  id
  number
  title
  url
  createdAt
  mergeable
  bodyText
  author { login avatarUrl }
  repository { name owner { login } }
  reviewRequests(first: 20) {
    nodes { requestedReviewer { __typename ... on User { login } } }
  }
  reviews(last: 50) {
    nodes { author { login } state submittedAt commit { oid } }
  }
  commits(last: 50) {
    nodes {
      commit {
        oid
        pushedDate
        committedDate
        additions
        deletions
        changedFiles
        status { state }
      }
    }
  }
  comments(last: 20) {
    nodes { author { login } bodyText createdAt url }
  }
}
`

const searchPullRequestsQuery = `
query SearchPullRequests($query: String!, $cursor: String) {
  search(type: ISSUE, query: $query, first: 20, after: $cursor) {
    pageInfo { hasNextPage endCursor }
    nodes {
      __typename
      ...pullRequestFields
    }
  }
}
` + pullRequestFields

const commitPullRequestsQuery = `
query CommitPullRequests($query: String!) {
  search(type: ISSUE, query: $query, first: 20) {
    nodes {
      __typename
      ... on PullRequest {
        number
        title
        url
        headRefOid
        reviewDecision
        author { login }
        repository { name owner { login } }
      }
    }
  }
}
`

const viewerQuery = `
query Viewer {
  viewer { login avatarUrl }
}
`
