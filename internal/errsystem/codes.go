package errsystem

var (
	ErrCatalogSchema      = ErrorType{Code: "FX-100", Message: "Unsupported catalog schema version"}
	ErrInvalidMetadata    = ErrorType{Code: "FX-101", Message: "Invalid extension metadata"}
	ErrExtensionNotFound  = ErrorType{Code: "FX-102", Message: "Extension not found in the catalog"}
	ErrCatalogRead        = ErrorType{Code: "FX-103", Message: "Unable to read the extension catalog"}
	ErrAlreadyInstalled   = ErrorType{Code: "FX-200", Message: "Extension is already installed"}
	ErrUnsupportedMethod  = ErrorType{Code: "FX-201", Message: "Unsupported fetch method"}
	ErrVersionResolution  = ErrorType{Code: "FX-202", Message: "Unable to resolve the requested version"}
	ErrInstallExtension   = ErrorType{Code: "FX-203", Message: "Failed to install extension"}
	ErrCatalogFetch       = ErrorType{Code: "FX-300", Message: "Failed to refresh the extension catalog"}
	ErrWorkingDirectory   = ErrorType{Code: "FX-301", Message: "Not inside a FreshRSS extensions directory"}
	ErrCleanCache         = ErrorType{Code: "FX-302", Message: "Failed to clean the scratch cache"}
	ErrVersionCheck       = ErrorType{Code: "FX-303", Message: "Failed to check for a newer freshext release"}
	ErrScanExtensions     = ErrorType{Code: "FX-304", Message: "Unable to scan the extensions directory"}
)
