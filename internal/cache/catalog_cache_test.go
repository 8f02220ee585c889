package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	dom "megawarez/internal/domain"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "catalog:product:list", ListKey(KindProduct))
	assert.Equal(t, "catalog:category:orderby:name:desc", OrderedKey(KindCategory, dom.Order{Column: "name", Desc: true}))
	assert.Equal(t, "catalog:subcategory:orderby:id:asc", OrderedKey(KindSubcategory, dom.Order{Column: "id"}))
	assert.Equal(t, "catalog:product:search:doom", SearchKey(KindProduct, "DOOM"))
	assert.Equal(t, SearchKey(KindProduct, "Doom"), SearchKey(KindProduct, "dOOm"))
}

func TestCatalogCache_UnreachableRedisReturnsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewCatalogCache(rdb, time.Minute)

	var out []dom.Category
	hit, err := c.Get(context.Background(), ListKey(KindCategory), &out)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, c.Set(context.Background(), ListKey(KindCategory), []dom.Category{}))
}
