package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/where2buy/backend/internal/domain"
)

// platform is one online destination; a template without %s is a static link
type platform struct {
	Name     string
	Template string
}

var (
	daraz      = platform{"Daraz", "https://www.daraz.pk/catalog/?q=%s"}
	priceOye   = platform{"PriceOye", "https://priceoye.pk/search?q=%s"}
	outfitters = platform{"Outfitters", "https://outfitters.com.pk/search?q=%s"}
	kraveMart  = platform{"Krave Mart", "https://www.kravemart.com/search?q=%s"}
	pandaMart  = platform{"PandaMart", "https://www.foodpanda.pk/darkstore/pandamart"}
	dawaai     = platform{"Dawaai.pk", "https://dawaai.pk/search?search=%s"}

	googleShopping = platform{"Google Shopping", "https://www.google.com/search?tbm=shop&q=%s"}
	amazon         = platform{"Amazon", "https://www.amazon.com/s?k=%s"}
	instagram      = platform{"Instagram", "https://www.instagram.com/explore/tags/%s/"}
)

// categoryPlatforms lists category-specific shops in display order.
// Categories without an entry get only the universal links.
var categoryPlatforms = map[domain.Category][]platform{
	domain.CategoryElectronics: {daraz, priceOye},
	domain.CategoryFashion:     {daraz, outfitters},
	domain.CategoryGrocery:     {kraveMart, pandaMart},
	domain.CategoryPharmacy:    {dawaai},
}

// fallbackPlatforms are appended for every item
var fallbackPlatforms = []platform{googleShopping, amazon}

// OnlineLinks returns the online search links for an item.
// Order: category-specific shops, then Google Shopping and Amazon, then Instagram.
func OnlineLinks(item domain.ExtractedItem) []domain.OnlineLink {
	query := CleanQuery(item.Query)
	specific := categoryPlatforms[item.Category]

	links := make([]domain.OnlineLink, 0, len(specific)+len(fallbackPlatforms)+1)
	for _, p := range specific {
		links = append(links, p.link(query))
	}
	for _, p := range fallbackPlatforms {
		links = append(links, p.link(query))
	}
	links = append(links, instagram.link(stripWhitespace(query)))

	return links
}

func (p platform) link(query string) domain.OnlineLink {
	u := p.Template
	if strings.Contains(u, "%s") {
		u = fmt.Sprintf(u, encodeURIComponent(query))
	}
	return domain.OnlineLink{Platform: p.Name, URL: u}
}

// encodeURIComponent escapes like the browser function of the same name,
// so spaces become %20 rather than +.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for _, keep := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(keep), keep)
	}
	return escaped
}
