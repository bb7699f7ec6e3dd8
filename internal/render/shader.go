package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// litVS/litFS: directional light + ambient + specular on per-vertex colors. Attribute and
// uniform names are raylib's defaults so DrawMesh binds them without extra locations.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
in vec4 vertexColor;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
out vec4 fragColor;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  fragColor = vertexColor;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
in vec4 fragColor;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = fragColor * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  if (dot(N, V) < 0.0) {
    N = -N; // back faces are lit like front faces when culling is off
  }
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

const (
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.25)
)

// litMaterial is the default material with the lit shader, or raylib's default shader when compiling fails.
type litMaterial struct {
	mtl  rl.Material
	lit  bool
	locs map[string]int32
}

func newLitMaterial() *litMaterial {
	m := &litMaterial{mtl: rl.LoadMaterialDefault(), locs: make(map[string]int32)}
	shader := rl.LoadShaderFromMemory(litVS, litFS)
	if rl.IsShaderValid(shader) {
		m.mtl.Shader = shader
		m.lit = true
		for _, name := range []string{"viewPos", "lightDir", "ambient", "lightColor", "specularPower", "specularStrength"} {
			m.locs[name] = rl.GetShaderLocation(shader, name)
		}
	}
	return m
}

// setLight updates the per-frame uniforms (cgo-safe: local arrays).
func (m *litMaterial) setLight(viewPos, lightDir [3]float32, ambient float32) {
	if !m.lit {
		return
	}
	shader := m.mtl.Shader
	amb := [4]float32{ambient, ambient, ambient, 1}
	lightColor := defaultLightColor
	set := func(name string, v []float32, typ rl.ShaderUniformDataType) {
		if loc := m.locs[name]; loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, typ, 1)
		}
	}
	set("viewPos", viewPos[:], rl.ShaderUniformVec3)
	set("lightDir", lightDir[:], rl.ShaderUniformVec3)
	set("ambient", amb[:], rl.ShaderUniformVec4)
	set("lightColor", lightColor[:], rl.ShaderUniformVec3)
	set("specularPower", []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	set("specularStrength", []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
}
