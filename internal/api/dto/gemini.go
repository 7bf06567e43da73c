package dto

// Part is a single text part of a Gemini content block.
type Part struct {
	Text string `json:"text"`
}

// Content is a Gemini content block.
type Content struct {
	Parts []Part `json:"parts"`
}

// GeminiAPIRequest is the request body for the Gemini generateContent endpoint.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// GeminiAPIResponse is the response body from the Gemini generateContent endpoint.
type GeminiAPIResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
