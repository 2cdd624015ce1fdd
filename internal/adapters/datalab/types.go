package datalab

// wire types for the /v1/datalab/search endpoint

type searchRequest struct {
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate"`
	TimeUnit      string         `json:"timeUnit"`
	KeywordGroups []keywordGroup `json:"keywordGroups"`
}

type keywordGroup struct {
	GroupName string   `json:"groupName"`
	Keywords  []string `json:"keywords"`
}

type searchResponse struct {
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	TimeUnit  string        `json:"timeUnit"`
	Results   []groupResult `json:"results"`
}

type groupResult struct {
	Title    string      `json:"title"`
	Keywords []string    `json:"keywords"`
	Data     []dataPoint `json:"data"`
}

type dataPoint struct {
	Period string  `json:"period"`
	Ratio  float64 `json:"ratio"`
}
