package pkg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordMinLength = 8
	// bcrypt 只接受 72 字节以内
	PasswordMaxBytes      = 72
	passwordMaxSimilarity = 0.7
)

// 密码强度不满足时的原因
const (
	ReasonTooShort        = "too_short"
	ReasonTooLong         = "too_long"
	ReasonEntirelyNumeric = "entirely_numeric"
	ReasonTooSimilar      = "too_similar"
	ReasonTooCommon       = "too_common"
)

// 常见弱口令，命中即拒绝
var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		123456 123456789 12345678 12345 1234567 1234567890 111111 000000 123123 654321
		password password1 password123 passw0rd p@ssw0rd p@ssword qwerty qwerty123 qwertyuiop
		abc123 abcd1234 1q2w3e4r 1qaz2wsx zaq12wsx iloveyou admin admin123 administrator
		welcome welcome1 letmein monkey dragon football baseball superman batman trustno1
		sunshine princess master hello123 freedom whatever shadow michael jennifer charlie
		starwars computer internet qazwsx asdfghjkl asdf1234 zxcvbnm changeme secret
		default guest login test1234 summer2024 winter2024 woaini5201314 woaini1314 aa123456
	`) {
		commonPasswords[p] = struct{}{}
	}
}

// CheckPasswordStrength 返回全部未满足的原因，nil 表示通过
// attrs 是用户名、邮箱、姓名等用户属性，用来判断密码是否与其过于相似
func CheckPasswordStrength(password string, attrs ...string) []string {
	var reasons []string
	if utf8.RuneCountInString(password) < PasswordMinLength {
		reasons = append(reasons, ReasonTooShort)
	}
	if len(password) > PasswordMaxBytes {
		reasons = append(reasons, ReasonTooLong)
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		reasons = append(reasons, ReasonEntirelyNumeric)
	}
	if tooSimilar(password, attrs) {
		reasons = append(reasons, ReasonTooSimilar)
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		reasons = append(reasons, ReasonTooCommon)
	}
	return reasons
}

func tooSimilar(password string, attrs []string) bool {
	pw := strings.ToLower(password)
	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" {
			continue
		}
		candidates := []string{attr}
		if at := strings.IndexByte(attr, '@'); at > 0 {
			candidates = append(candidates, attr[:at])
		}
		for _, c := range candidates {
			if len(c) >= 3 && strings.Contains(pw, c) {
				return true
			}
			if similarity(pw, c) >= passwordMaxSimilarity {
				return true
			}
		}
	}
	return false
}

// similarity 2*LCS/(len(a)+len(b))，LCS 为最长公共子序列
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra)+len(rb) == 0 {
		return 0
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return 2 * float64(prev[len(rb)]) / float64(len(ra)+len(rb))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
