package services

import (
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "net/url"
  "os"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/utils"
)

// Citation is the subset of a PubMed record used to enrich a research
// product.
type Citation struct {
  PMID    string   `json:"pmid"`
  Title   string   `json:"title"`
  Journal string   `json:"journal"`
  Volume  string   `json:"volume"`
  Issue   string   `json:"issue"`
  Pages   string   `json:"pages"`
  PubDate string   `json:"pub_date"`
  Authors []string `json:"authors"`
}

type PubMedClient interface {
  LookupByPMID(ctx context.Context, pmid string) (*Citation, error)
  SearchByTitle(ctx context.Context, title string) (*Citation, error)
}

type pubMedClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  httpClient *http.Client
  maxRetries int

  rdb      *goredis.Client
  cacheTTL time.Duration
}

func NewPubMedClient(log *logger.Logger) (PubMedClient, error) {
  serviceLog := log.With("service", "PubMedClient")

  baseURL := strings.TrimRight(utils.GetEnv("PUBMED_BASE_URL", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", log), "/")
  timeoutSec := utils.GetEnvAsInt("PUBMED_TIMEOUT_SECONDS", 30, log)
  maxRetries := utils.GetEnvAsInt("PUBMED_MAX_RETRIES", 3, log)
  cacheTTLHours := utils.GetEnvAsInt("PUBMED_CACHE_TTL_HOURS", 168, log)

  // Summary lookups are immutable for published articles; a shared Redis
  // cache keeps us inside NCBI's rate limits. Missing Redis just means
  // every lookup goes to the network.
  var rdb *goredis.Client
  if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
    rdb = goredis.NewClient(&goredis.Options{
      Addr:        addr,
      DialTimeout: 5 * time.Second,
    })
    pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    if err := rdb.Ping(pingCtx).Err(); err != nil {
      serviceLog.Warn("Redis unreachable, PubMed lookups will not be cached", "error", err)
      _ = rdb.Close()
      rdb = nil
    }
    cancel()
  }

  return &pubMedClient{
    log:        serviceLog,
    baseURL:    baseURL,
    apiKey:     strings.TrimSpace(os.Getenv("NCBI_API_KEY")),
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    maxRetries: maxRetries,
    rdb:        rdb,
    cacheTTL:   time.Duration(cacheTTLHours) * time.Hour,
  }, nil
}

func (c *pubMedClient) LookupByPMID(ctx context.Context, pmid string) (*Citation, error) {
  pmid = strings.TrimSpace(pmid)
  if pmid == "" {
    return nil, fmt.Errorf("pmid required")
  }

  if cached := c.cacheGet(ctx, pmid); cached != nil {
    return cached, nil
  }

  citation, err := c.fetchSummary(ctx, pmid)
  if err != nil {
    return nil, err
  }
  c.cacheSet(ctx, citation)
  return citation, nil
}

func (c *pubMedClient) SearchByTitle(ctx context.Context, title string) (*Citation, error) {
  title = strings.TrimSpace(title)
  if title == "" {
    return nil, fmt.Errorf("title required")
  }

  params := url.Values{}
  params.Set("db", "pubmed")
  params.Set("retmode", "json")
  params.Set("retmax", "1")
  params.Set("term", title+"[Title]")
  if c.apiKey != "" {
    params.Set("api_key", c.apiKey)
  }

  var resp esearchResponse
  if err := c.fetchJSON(ctx, "/esearch.fcgi?"+params.Encode(), &resp); err != nil {
    return nil, err
  }
  if len(resp.ESearchResult.IDList) == 0 {
    return nil, fmt.Errorf("no PubMed match for title %q", title)
  }
  return c.LookupByPMID(ctx, resp.ESearchResult.IDList[0])
}

type esearchResponse struct {
  ESearchResult struct {
    IDList []string `json:"idlist"`
  } `json:"esearchresult"`
}

type esummaryAuthor struct {
  Name string `json:"name"`
}

type esummaryDoc struct {
  UID             string           `json:"uid"`
  Title           string           `json:"title"`
  FullJournalName string           `json:"fulljournalname"`
  Source          string           `json:"source"`
  Volume          string           `json:"volume"`
  Issue           string           `json:"issue"`
  Pages           string           `json:"pages"`
  PubDate         string           `json:"pubdate"`
  Authors         []esummaryAuthor `json:"authors"`
}

func (c *pubMedClient) fetchSummary(ctx context.Context, pmid string) (*Citation, error) {
  params := url.Values{}
  params.Set("db", "pubmed")
  params.Set("retmode", "json")
  params.Set("id", pmid)
  if c.apiKey != "" {
    params.Set("api_key", c.apiKey)
  }

  // esummary keys each record by its own uid, so the result object has
  // dynamic keys and needs a two-stage decode.
  var resp struct {
    Result map[string]json.RawMessage `json:"result"`
  }
  if err := c.fetchJSON(ctx, "/esummary.fcgi?"+params.Encode(), &resp); err != nil {
    return nil, err
  }

  raw, ok := resp.Result[pmid]
  if !ok {
    return nil, fmt.Errorf("no PubMed record for pmid %s", pmid)
  }
  var doc esummaryDoc
  if err := json.Unmarshal(raw, &doc); err != nil {
    return nil, fmt.Errorf("pubmed decode error for pmid %s: %w", pmid, err)
  }
  return citationFromSummary(pmid, doc), nil
}

func citationFromSummary(pmid string, doc esummaryDoc) *Citation {
  journal := doc.FullJournalName
  if journal == "" {
    journal = doc.Source
  }
  authors := make([]string, 0, len(doc.Authors))
  for _, a := range doc.Authors {
    if strings.TrimSpace(a.Name) != "" {
      authors = append(authors, a.Name)
    }
  }
  return &Citation{
    PMID:    pmid,
    Title:   strings.TrimSpace(doc.Title),
    Journal: journal,
    Volume:  doc.Volume,
    Issue:   doc.Issue,
    Pages:   doc.Pages,
    PubDate: doc.PubDate,
    Authors: authors,
  }
}

func (c *pubMedClient) fetchJSON(ctx context.Context, pathAndQuery string, out any) error {
  backoff := 1 * time.Second

  for attempt := 0; attempt <= c.maxRetries; attempt++ {
    if ctx.Err() != nil {
      return ctx.Err()
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
    if err != nil {
      return err
    }

    resp, err := c.httpClient.Do(req)
    if err == nil {
      raw, readErr := io.ReadAll(resp.Body)
      _ = resp.Body.Close()
      if readErr == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
        if uErr := json.Unmarshal(raw, out); uErr != nil {
          return fmt.Errorf("pubmed decode error: %w; raw=%s", uErr, string(raw))
        }
        return nil
      }
      if readErr == nil && !isRetryableHTTP(resp.StatusCode) {
        return fmt.Errorf("pubmed http %d: %s", resp.StatusCode, string(raw))
      }
      err = fmt.Errorf("pubmed http %d", resp.StatusCode)
    }

    if attempt == c.maxRetries {
      return err
    }

    sleepFor := jitterSleep(backoff)
    c.log.Warn("PubMed request retrying",
      "path", pathAndQuery,
      "attempt", attempt+1,
      "max_retries", c.maxRetries,
      "sleep", sleepFor.String(),
      "error", err.Error(),
    )
    time.Sleep(sleepFor)
    backoff *= 2
  }

  return fmt.Errorf("unreachable retry loop")
}

func (c *pubMedClient) cacheGet(ctx context.Context, pmid string) *Citation {
  if c.rdb == nil {
    return nil
  }
  raw, err := c.rdb.Get(ctx, pubmedCacheKey(pmid)).Bytes()
  if err != nil {
    return nil
  }
  var citation Citation
  if err := json.Unmarshal(raw, &citation); err != nil {
    return nil
  }
  return &citation
}

func (c *pubMedClient) cacheSet(ctx context.Context, citation *Citation) {
  if c.rdb == nil || citation == nil {
    return
  }
  raw, err := json.Marshal(citation)
  if err != nil {
    return
  }
  if err := c.rdb.Set(ctx, pubmedCacheKey(citation.PMID), raw, c.cacheTTL).Err(); err != nil {
    c.log.Debug("Could not cache PubMed summary", "pmid", citation.PMID, "error", err)
  }
}

func pubmedCacheKey(pmid string) string {
  return "pubmed:summary:" + pmid
}
