package backend

import "strings"

// known extension tokens, matched literally against whichever discovery
// path the Device used (GetStringi enumeration or the legacy
// space-separated GL_EXTENSIONS string). Both paths must agree on
// classification, so the matching lives here, shared.
const (
	extVAO          = "GL_ARB_vertex_array_object"
	extVAOOES       = "GL_OES_vertex_array_object"
	extNPOT         = "GL_ARB_texture_non_power_of_two"
	extNPOTOES      = "GL_OES_texture_npot"
	extFloatTex     = "GL_ARB_texture_float"
	extFloatTexOES  = "GL_OES_texture_float"
	extDepthTex     = "GL_ARB_depth_texture"
	extDepthTexOES  = "GL_OES_depth_texture"
	extS3TC         = "GL_EXT_texture_compression_s3tc"
	extETC1         = "GL_OES_compressed_ETC1_RGB8_texture"
	extETC2         = "GL_ARB_ES3_compatibility"
	extPVRT         = "GL_IMG_texture_compression_pvrtc"
	extASTC         = "GL_KHR_texture_compression_astc_hdr"
	extMirrorClamp  = "GL_EXT_texture_mirror_clamp"
	extAnisotropic  = "GL_EXT_texture_filter_anisotropic"
	extDebugMarker  = "GL_EXT_debug_marker"
)

// ClassifyExtensions turns a flat extension token list (already split,
// regardless of which enumeration path produced it) into capability
// flags. Both GetStringi-index enumeration and legacy
// strings.Fields(glExtensionsString) discovery paths must feed this
// single function so classification never drifts between the two.
func ClassifyExtensions(tokens []string) Extensions {
	var e Extensions
	for _, t := range tokens {
		switch t {
		case extVAO, extVAOOES:
			e.VAO = true
		case extNPOT, extNPOTOES:
			e.TexNPOT = true
		case extFloatTex, extFloatTexOES:
			e.TexFloat = true
		case extDepthTex, extDepthTexOES:
			e.TexDepth = true
		case extS3TC:
			e.TexCompressionDXT = true
		case extETC1:
			e.TexCompressionETC1 = true
		case extETC2:
			e.TexCompressionETC2 = true
		case extPVRT:
			e.TexCompressionPVRT = true
		case extASTC:
			e.TexCompressionASTC = true
		case extMirrorClamp:
			e.TexMirrorClamp = true
		case extAnisotropic:
			e.TexAnisotropicFilter = true
		case extDebugMarker:
			e.DebugMarker = true
		}
	}
	return e
}

// SplitLegacyExtensionString implements the fallback discovery path: a
// single space-separated GL_EXTENSIONS string, for profiles lacking
// GetStringi (ES2 and some old desktop drivers).
func SplitLegacyExtensionString(s string) []string {
	return strings.Fields(s)
}
