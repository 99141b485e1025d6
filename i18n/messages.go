package i18n

var catalog = map[string]Text{
	// generic
	"not_found":             {En: "Not found", Ar: "غير موجود"},
	"conflict":              {En: "Conflict", Ar: "تعارض في البيانات"},
	"bad_request":           {En: "Bad request", Ar: "طلب غير صالح"},
	"internal_server_error": {En: "Internal server error", Ar: "خطأ في الخادم"},
	"unauthorized":          {En: "Unauthorized", Ar: "غير مصرح"},
	"too_many_requests":     {En: "Rate limit exceeded. Please try again later.", Ar: "تم تجاوز الحد المسموح. حاول لاحقاً"},
	"validation_error":      {En: "Validation error", Ar: "خطأ في التحقق"},

	// validation fields
	"field_required":       {En: "This field is required", Ar: "هذا الحقل مطلوب"},
	"body_required":        {En: "At least one field is required", Ar: "يجب إدخال حقل واحد على الأقل"},
	"number_id_invalid":    {En: "Id must be a positive integer", Ar: "المعرف يجب أن يكون رقماً موجباً"},
	"invalid_value":        {En: "Invalid value", Ar: "قيمة غير صالحة"},
	"invalid_type":         {En: "Invalid type", Ar: "نوع غير صالح"},
	"value_too_small":      {En: "Value is too small", Ar: "القيمة صغيرة جداً"},
	"value_too_large":      {En: "Value is too large", Ar: "القيمة كبيرة جداً"},
	"invalid_url":          {En: "Invalid URL", Ar: "رابط غير صالح"},
	"email_invalid":        {En: "Invalid email address", Ar: "بريد إلكتروني غير صالح"},
	"phone_number_invalid": {En: "Invalid phone number", Ar: "رقم هاتف غير صالح"},
	"password_min":         {En: "Password must be at least 8 characters long", Ar: "كلمة المرور يجب أن تكون 8 أحرف على الأقل"},

	// cart
	"cart_fetched_successfully":       {En: "Cart fetched successfully", Ar: "تم جلب السلة بنجاح"},
	"item_added_to_cart_successfully": {En: "Item added to cart successfully", Ar: "تمت إضافة المنتج إلى السلة بنجاح"},
	"cart_item_updated_successfully":  {En: "Cart item updated successfully", Ar: "تم تحديث المنتج في السلة بنجاح"},
	"cart_item_removed_successfully":  {En: "Cart item removed successfully", Ar: "تمت إزالة المنتج من السلة بنجاح"},
	"color_not_found":                 {En: "Color not found", Ar: "اللون غير موجود"},
	"size_not_found":                  {En: "Size not found", Ar: "المقاس غير موجود"},
	"cart_item_not_found":             {En: "Cart item not found", Ar: "المنتج غير موجود في السلة"},
	"idempotency_request_in_progress": {En: "A request with this Idempotency-Key is still in progress", Ar: "يوجد طلب قيد التنفيذ بنفس مفتاح التكرار"},
	"idempotency_key_reused":          {En: "Idempotency-Key was already used with a different request", Ar: "تم استخدام مفتاح التكرار مع طلب مختلف"},
	"not_enough_inventory":            {En: "Not enough inventory", Ar: "الكمية المتوفرة غير كافية"},

	// auth
	"login_successful":    {En: "Logged in successfully", Ar: "تم تسجيل الدخول بنجاح"},
	"register_successful": {En: "Registered successfully", Ar: "تم التسجيل بنجاح"},
	"user_fetched":        {En: "User fetched successfully", Ar: "تم جلب المستخدم بنجاح"},
	"user_updated":        {En: "User updated successfully", Ar: "تم تحديث المستخدم بنجاح"},
	"user_conflict":       {En: "User already exists", Ar: "المستخدم موجود بالفعل"},
	"region_not_found":    {En: "Region not found", Ar: "المنطقة غير موجودة"},

	// products
	"products_fetched_successfully":  {En: "Products fetched successfully", Ar: "تم جلب المنتجات بنجاح"},
	"product_fetched_successfully":   {En: "Product fetched successfully", Ar: "تم جلب المنتج بنجاح"},
	"product_created_successfully":   {En: "Product created successfully", Ar: "تم إنشاء المنتج بنجاح"},
	"product_updated_successfully":   {En: "Product updated successfully", Ar: "تم تحديث المنتج بنجاح"},
	"product_not_found":              {En: "Product not found", Ar: "المنتج غير موجود"},
	"favorites_fetched_successfully": {En: "Favorites fetched successfully", Ar: "تم جلب المفضلة بنجاح"},
	"size_code_unknown":              {En: "Unknown size code", Ar: "رمز المقاس غير معروف"},

	// categories
	"categories_fetched_successfully": {En: "Categories fetched successfully", Ar: "تم جلب الفئات بنجاح"},
	"category_created_successfully":   {En: "Category created successfully", Ar: "تم إنشاء الفئة بنجاح"},
	"category_updated_successfully":   {En: "Category updated successfully", Ar: "تم تحديث الفئة بنجاح"},
	"category_deleted_successfully":   {En: "Category deleted successfully", Ar: "تم حذف الفئة بنجاح"},
	"category_not_found":              {En: "Category not found", Ar: "الفئة غير موجودة"},
	"category_has_products":           {En: "Category has products and cannot be deleted", Ar: "لا يمكن حذف فئة تحتوي على منتجات"},

	// branches
	"branches_fetched_successfully": {En: "Branches fetched successfully", Ar: "تم جلب الفروع بنجاح"},
	"branch_created_successfully":   {En: "Branch created successfully", Ar: "تم إنشاء الفرع بنجاح"},
	"branch_updated_successfully":   {En: "Branch updated successfully", Ar: "تم تحديث الفرع بنجاح"},
	"branch_deleted_successfully":   {En: "Branch deleted successfully", Ar: "تم حذف الفرع بنجاح"},
	"branch_not_found":              {En: "Branch not found", Ar: "الفرع غير موجود"},

	// lists
	"lists_fetched_successfully": {En: "Fetched successfully", Ar: "تم الجلب بنجاح"},

	// upload
	"file_uploaded_successfully": {En: "File uploaded successfully", Ar: "تم رفع الملف بنجاح"},
	"no_file_uploaded":           {En: "No file uploaded", Ar: "لم يتم رفع أي ملف"},
	"only_images_allowed":        {En: "Only image files are allowed", Ar: "يسمح بملفات الصور فقط"},
	"file_too_large":             {En: "File is too large", Ar: "حجم الملف كبير جداً"},
	"presign_unavailable":        {En: "Direct uploads are not configured", Ar: "الرفع المباشر غير مفعل"},
}

// T translates a message key. Unknown keys are returned unchanged.
func T(lang Lang, key string) string {
	if text, ok := catalog[key]; ok {
		return text.In(lang)
	}
	return key
}
