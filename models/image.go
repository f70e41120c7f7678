package models

// DefaultOutputPath is where generated images are saved when the caller
// does not specify a path.
const DefaultOutputPath = "blackbox_generated_image.jpg"

// StatusImageGenerated is the status reported after an image has been
// generated, downloaded and written to disk.
const StatusImageGenerated = "Image Generated Successfully"

// ImageGenerationInput represents the input for an image generation request.
type ImageGenerationInput struct {
	Prompt     string
	OutputPath string // Defaults to DefaultOutputPath when empty
	Size       string // Ignored by providers without size selection
	Number     int
	Verbose    bool   // Echo the extracted image URL
	Refine     bool   // Run the prompt through the configured refiner first
	Provider   string // Specifies the provider explicitly
}

// ImageGenerationResponse represents the response from an image generation request.
type ImageGenerationResponse struct {
	Status    string
	URL       string // URL the image bytes were fetched from
	SavedPath string // Local path the image was written to
	Provider  string // Indicates which provider generated the image
}
