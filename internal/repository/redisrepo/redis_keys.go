package redisrepo

import "fmt"

const (
	POST_KEY   = "post:%d"   // <postID>
	GROUP_KEY  = "group:%s"  // <slug>
	AUTHOR_KEY = "author:%s" // <authorID>
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GROUP_KEY, slug)
}

func AuthorKey(authorID string) string {
	return fmt.Sprintf(AUTHOR_KEY, authorID)
}
