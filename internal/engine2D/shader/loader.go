package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"linux-backdrop/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultVertex = `#version 120
attribute vec3 vertexPosition;
attribute vec2 vertexTexCoord;
attribute vec4 vertexColor;
varying vec2 fragTexCoord;
varying vec4 fragColor;
varying vec4 v_TexCoord;
uniform mat4 mvp;
void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    v_TexCoord = vertexTexCoord.xyxy;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// Preprocess prepares a Wallpaper Engine style fragment shader for GLSL 1.20:
// injects the combo defines, the HLSL compatibility macros and inlines
// #include "x" lines from the shaders/ asset directory.
func Preprocess(source string, combos map[string]int) string {
	var sb strings.Builder
	sb.WriteString("#version 120\n")

	names := make([]string, 0, len(combos))
	for k := range combos {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		sb.WriteString(fmt.Sprintf("#define %s %d\n", k, combos[k]))
	}

	sb.WriteString("#define frac fract\n")
	sb.WriteString("#define lerp mix\n")
	sb.WriteString("#define texSample2D texture2D\n")
	sb.WriteString("#define atan2(y, x) atan(y, x)\n")
	sb.WriteString("#define mul(a, b) ((b) * (a))\n")
	sb.WriteString("#define g_Texture0 texture0\n")
	sb.WriteString("#define CAST2(x) vec2(x)\n")
	sb.WriteString("#define CAST3(x) vec3(x)\n")
	sb.WriteString("#define CAST4(x) vec4(x)\n")
	sb.WriteString("#define saturate(x) clamp(x, 0.0, 1.0)\n")

	included := make(map[string]bool)
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#version") {
			continue
		}
		if strings.HasPrefix(trimmed, "#include \"") && strings.HasSuffix(trimmed, "\"") {
			includeFile := strings.TrimSpace(trimmed[len("#include \"") : len(trimmed)-1])
			if included[includeFile] {
				continue
			}
			includePath := utils.ResolveAssetPath(filepath.Join("shaders", includeFile))
			if content, err := os.ReadFile(includePath); err == nil {
				sb.WriteString(strings.Trim(string(content), "\ufeff"))
				sb.WriteString("\n")
				included[includeFile] = true
				continue
			}
			utils.Warn("Shader: Could not resolve include: %s", includeFile)
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Load compiles the fragment shader at path against the built-in vertex
// stage. Compilation failures are reported as errors so the host can fall
// back to drawing the canvas unshaded.
func Load(path string, combos map[string]int, constants Constants) (*Effect, error) {
	data, err := os.ReadFile(utils.ResolveAssetPath(path))
	if err != nil {
		return nil, fmt.Errorf("read shader %s: %w", path, err)
	}

	utils.Debug("Shader: Preprocessing %s (Combos: %v)", path, combos)
	fSource := Preprocess(string(data), combos)

	var shader rl.Shader
	func() {
		defer func() {
			if r := recover(); r != nil {
				utils.Error("Shader: %s - Compilation panic: %v", path, r)
				shader = rl.Shader{}
			}
		}()
		shader = rl.LoadShaderFromMemory(defaultVertex, fSource)
	}()

	if shader.ID == 0 {
		return nil, fmt.Errorf("compile shader %s", path)
	}
	utils.Info("Shader: %s - Loaded successfully (ID: %d)", path, shader.ID)

	effect := &Effect{
		Name:       path,
		Shader:     shader,
		Parameters: ResolveLocations(shader),
		Constants:  constants,
	}
	effect.UpdateUniforms()
	return effect, nil
}
