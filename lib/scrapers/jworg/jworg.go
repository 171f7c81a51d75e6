package jworg

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jwmeeting-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://www.jw.org"

// the site rejects obvious non-browser clients, so requests go out
// with a browser user agent behind the cloudflare bypass transport
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// language codes longer than this are sitemap artifacts, not codes
const maxCodeLength = 10

type Language struct {
	Code string
}

type ClientOptions struct {
	BaseUrl string
	Timeout time.Duration
}

type Client struct {
	baseUrl string
	http    *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := strings.TrimRight(opts.BaseUrl, "/")
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 60
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", browserUserAgent)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	telemetry.InstrumentResty(client, "lib/scrapers/jworg/http")

	return &Client{
		baseUrl: baseUrl,
		http:    client,
	}
}

type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

func codeFromSitemapLoc(loc string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(loc))
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	// per-language sitemaps look like /{code}/sitemap.xml
	if len(segments) != 2 || segments[1] != "sitemap.xml" {
		return "", false
	}
	code := segments[0]
	if code == "" || len(code) > maxCodeLength {
		return "", false
	}
	return code, true
}

// SitemapLanguages reads the main sitemap index and extracts the
// language code of every per-language child sitemap.
func (c *Client) SitemapLanguages(ctx context.Context) ([]Language, error) {
	ctx, span := tracer.Start(ctx, "SitemapLanguages")
	defer span.End()

	sitemapUrl := c.baseUrl + "/sitemap.xml"
	res, err := c.http.R().SetContext(ctx).Get(sitemapUrl)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch sitemap")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("unexpected status %d fetching %s", res.StatusCode(), sitemapUrl)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var index sitemapIndex
	err = xml.Unmarshal(res.Body(), &index)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse sitemap xml")
		return nil, fmt.Errorf("failed to parse sitemap xml: %w", err)
	}

	var languages []Language
	for _, sitemap := range index.Sitemaps {
		code, ok := codeFromSitemapLoc(sitemap.Loc)
		if !ok {
			continue
		}
		languages = append(languages, Language{Code: code})
	}

	span.SetAttributes(attribute.Int("languages", len(languages)))
	return languages, nil
}

// HomepageLanguageNames extracts native language names from the
// `link rel=alternate` metadata of the homepage, keyed by hreflang
// code. The spanish homepage references the most languages.
func (c *Client) HomepageLanguageNames(ctx context.Context) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "HomepageLanguageNames")
	defer span.End()

	homeUrl := c.baseUrl + "/es/"
	res, err := c.http.R().SetContext(ctx).Get(homeUrl)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch homepage")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("unexpected status %d fetching %s", res.StatusCode(), homeUrl)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse homepage html")
		return nil, fmt.Errorf("failed to parse homepage html: %w", err)
	}

	names := map[string]string{}
	doc.Find("link[rel=alternate][hreflang]").Each(func(_ int, link *goquery.Selection) {
		hreflang := link.AttrOr("hreflang", "")
		title := link.AttrOr("title", "")
		// the title attribute reads "Page Title | Native Name"
		if hreflang == "" || !strings.Contains(title, "|") {
			return
		}
		name := strings.TrimSpace(title[strings.LastIndex(title, "|")+1:])
		if name == "" {
			return
		}
		names[hreflang] = name
	})

	span.SetAttributes(attribute.Int("names", len(names)))
	return names, nil
}
